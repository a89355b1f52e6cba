package camera

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the distance to the first surface point of the
// sphere in front of the ray origin.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		// Origin inside the sphere
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Intersection is one ray hit on a mesh.
type Intersection struct {
	Distance float64
	Point    mgl64.Vec3
	Object   *scene.Mesh
}

// Raycaster finds meshes under a screen point.
type Raycaster struct {
	Ray  Ray
	Near float64
	Far  float64
}

// NewRaycaster creates a raycaster with an unbounded far distance.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math.Inf(1)}
}

// SetFromCamera aims the ray from the camera through the NDC point.
func (rc *Raycaster) SetFromCamera(ndc mgl64.Vec2, cam *Perspective) {
	rc.Ray = cam.Ray(ndc)
}

// IntersectObjects tests the ray against meshes and returns the hits sorted
// nearest first. Equal distances keep the input order.
func (rc *Raycaster) IntersectObjects(meshes []*scene.Mesh) []Intersection {
	var hits []Intersection
	for _, m := range meshes {
		t, ok := rc.Ray.IntersectSphere(m.Position, m.Radius)
		if !ok || t < rc.Near || t > rc.Far {
			continue
		}
		hits = append(hits, Intersection{Distance: t, Point: rc.Ray.At(t), Object: m})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
