package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/scene"
)

func TestDefaultCamera(t *testing.T) {
	c := Default(800.0 / 600.0)

	if c.FOV != 75 || c.Near != 0.1 || c.Far != 1000 {
		t.Errorf("camera params = %v/%v/%v, want 75/0.1/1000", c.FOV, c.Near, c.Far)
	}
	if c.Position != (mgl64.Vec3{0, 10, 50}) {
		t.Errorf("position = %v, want (0, 10, 50)", c.Position)
	}

	ndc, ok := c.Project(mgl64.Vec3{})
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(ndc.X()) > 1e-9 || math.Abs(ndc.Y()) > 1e-9 {
		t.Errorf("origin projects to %v, want screen center", ndc)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := Default(1)
	if _, ok := c.Project(mgl64.Vec3{0, 10, 100}); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	c := Default(16.0 / 9.0)
	p := c.Projector()

	points := []mgl64.Vec3{
		{5, 0, 0},
		{-10, 2, 3},
		{0, 0, -29},
	}
	for _, world := range points {
		ndc, ok := p.Project(world)
		if !ok {
			t.Fatalf("%v not visible", world)
		}
		back := p.Unproject(ndc)
		if back.Sub(world).Len() >= 1e-6 {
			t.Errorf("Unproject(Project(%v)) = %v", world, back)
		}
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := Default(800.0 / 600.0)
	before := c.Projection()

	c.SetAspect(1600.0 / 900.0)
	c.UpdateProjectionMatrix()

	if math.Abs(c.Aspect-1.7778) > 1e-4 {
		t.Errorf("aspect = %f, want 1.778", c.Aspect)
	}
	if c.Projection() == before {
		t.Error("projection matrix unchanged after aspect change")
	}
}

func TestDepth(t *testing.T) {
	c := Default(1)
	p := c.Projector()
	want := c.Position.Len()
	if got := p.Depth(mgl64.Vec3{}); math.Abs(got-want) > 1e-9 {
		t.Errorf("Depth(origin) = %f, want %f", got, want)
	}
}

func TestRayIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 10}, Direction: mgl64.Vec3{0, 0, -1}}

	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		want   float64
		hit    bool
	}{
		{"ahead", mgl64.Vec3{}, 1, 9, true},
		{"off axis", mgl64.Vec3{5, 0, 0}, 1, 0, false},
		{"behind", mgl64.Vec3{0, 0, 20}, 1, 0, false},
		{"inside", mgl64.Vec3{0, 0, 10}, 2, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.IntersectSphere(tt.center, tt.radius)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRaycasterNearestFirst(t *testing.T) {
	c := Default(1)
	c.Position = mgl64.Vec3{0, 0, 50}
	rc := NewRaycaster()
	rc.SetFromCamera(mgl64.Vec2{0, 0}, c)

	far := &scene.Mesh{Name: "far", Radius: 1, Position: mgl64.Vec3{0, 0, -10}}
	near := &scene.Mesh{Name: "near", Radius: 1, Position: mgl64.Vec3{0, 0, 10}}
	miss := &scene.Mesh{Name: "miss", Radius: 1, Position: mgl64.Vec3{20, 0, 0}}

	hits := rc.IntersectObjects([]*scene.Mesh{far, miss, near})
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Object != near || hits[1].Object != far {
		t.Errorf("hit order = %s, %s; want near, far", hits[0].Object.Name, hits[1].Object.Name)
	}
	if math.Abs(hits[0].Distance-39) > 1e-9 {
		t.Errorf("nearest distance = %f, want 39", hits[0].Distance)
	}
}

func TestRaycasterTieKeepsInputOrder(t *testing.T) {
	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl64.Vec3{0, 0, 10}, Direction: mgl64.Vec3{0, 0, -1}}

	a := &scene.Mesh{Name: "a", Radius: 1}
	b := &scene.Mesh{Name: "b", Radius: 1}

	hits := rc.IntersectObjects([]*scene.Mesh{a, b})
	if len(hits) != 2 || hits[0].Object != a {
		t.Errorf("tie order not preserved: %+v", hits)
	}
}

func TestRayGridMatchesProjectorRay(t *testing.T) {
	c := Default(160.0 / 90.0)
	c.Position = mgl64.Vec3{12, 20, 35}
	p := c.Projector()
	const w, h = 160, 90
	grid := p.RayGrid(w, h)

	pixels := [][2]int{{0, 0}, {159, 0}, {0, 89}, {80, 45}, {37, 61}, {159, 89}}
	for _, px := range pixels {
		ndc := mgl64.Vec2{
			(float64(px[0])+0.5)/w*2 - 1,
			-((float64(px[1])+0.5)/h)*2 + 1,
		}
		want := p.Ray(ndc)
		got := grid.At(px[0], px[1])
		if got.Origin != want.Origin {
			t.Errorf("pixel %v origin = %v, want %v", px, got.Origin, want.Origin)
		}
		if got.Direction.Sub(want.Direction).Len() >= 1e-9 {
			t.Errorf("pixel %v direction = %v, want %v", px, got.Direction, want.Direction)
		}
	}
}
