package render

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/session"
)

// newEarthScene returns a scene with only Earth at angle 0 and no stars.
func newEarthScene() *scene.Scene {
	var earth scene.PlanetDescriptor
	for _, d := range scene.DefaultPlanets() {
		if d.Name == "Earth" {
			earth = d
		}
	}
	s := scene.Bootstrap([]scene.PlanetDescriptor{earth}, rand.New(rand.NewSource(7)))
	s.Stars.Points = nil
	s.Planets[0].Angle = 0
	s.Advance(true)
	return s
}

func TestFrameSetPixelDepthTest(t *testing.T) {
	f := NewFrame(4, 4, session.DarkBackground)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	if !f.SetPixel(1, 1, red, 10) {
		t.Fatal("first write rejected")
	}
	if f.SetPixel(1, 1, blue, 20) {
		t.Error("farther write accepted")
	}
	if !f.SetPixel(1, 1, blue, 5) {
		t.Error("nearer write rejected")
	}
	if f.Pixel(1, 1) != blue {
		t.Errorf("pixel = %v, want blue", f.Pixel(1, 1))
	}
	if f.SetPixel(-1, 0, red, 0) || f.SetPixel(4, 0, red, 0) {
		t.Error("out of bounds write accepted")
	}
}

func TestFrameOverlayClipping(t *testing.T) {
	f := NewFrame(6, 4, session.DarkBackground)
	if f.Rows() != 2 || f.Cols() != 6 {
		t.Fatalf("cells = %dx%d, want 6x2", f.Cols(), f.Rows())
	}

	f.DrawText(-2, 0, "abcdef", colorful.Color{R: 1, G: 1, B: 1})
	if got := f.OverlayLine(0); got != "cdef  " {
		t.Errorf("row 0 = %q, want %q", got, "cdef  ")
	}
	f.DrawText(3, 1, "xyz123", colorful.Color{})
	if got := f.OverlayLine(1); got != "   xyz" {
		t.Errorf("row 1 = %q, want %q", got, "   xyz")
	}
	f.DrawText(0, 5, "nope", colorful.Color{})
}

func TestRenderEmptySurface(t *testing.T) {
	r := New(0, 0)
	f := r.Render(newEarthScene(), camera.Default(1), session.DarkBackground)
	if f.Width != 0 || f.Height != 0 {
		t.Errorf("frame = %dx%d, want 0x0", f.Width, f.Height)
	}
	if f.String() != "" {
		t.Error("empty frame should render as empty string")
	}
}

func TestRenderSunAtCenter(t *testing.T) {
	r := New(80, 40)
	cam := camera.Default(80.0 / 40.0)
	s := newEarthScene()
	s.Orbits = nil

	f := r.Render(s, cam, session.DarkBackground)

	if got := f.Pixel(40, 20); got != s.Sun.Color {
		t.Errorf("center pixel = %v, want sun color %v", got.Hex(), s.Sun.Color.Hex())
	}
	if f.DepthAt(40, 20) >= cam.Position.Len() {
		t.Errorf("sun depth %f should be in front of origin", f.DepthAt(40, 20))
	}
}

func TestRenderBackgroundFollowsTheme(t *testing.T) {
	r := New(40, 20)
	cam := camera.Default(2)
	s := newEarthScene()

	dark := r.Render(s, cam, session.DarkBackground)
	if dark.Pixel(0, 0) != session.DarkBackground {
		t.Errorf("dark corner = %v", dark.Pixel(0, 0).Hex())
	}
	light := r.Render(s, cam, session.LightBackground)
	if light.Pixel(0, 0) != session.LightBackground {
		t.Errorf("light corner = %v", light.Pixel(0, 0).Hex())
	}
}

func TestRenderOrbitRing(t *testing.T) {
	r := New(120, 60)
	s := newEarthScene()
	f := r.Render(s, camera.Default(2), session.DarkBackground)

	white := colorful.Color{R: 1, G: 1, B: 1}
	count := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Pixel(x, y) == white {
				count++
			}
		}
	}
	if count == 0 {
		t.Error("no orbit ring pixels drawn")
	}
}

func TestRenderLabel(t *testing.T) {
	r := New(120, 60)
	f := r.Render(newEarthScene(), camera.Default(2), session.DarkBackground)

	found := false
	for row := 0; row < f.Rows(); row++ {
		if strings.Contains(f.OverlayLine(row), "Earth") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Earth label not drawn")
	}
}

func TestRenderPlainString(t *testing.T) {
	r := New(80, 40)
	s := newEarthScene()
	s.Orbits = nil
	f := r.Render(s, camera.Default(2), session.DarkBackground)

	lines := strings.Split(f.PlainString(), "\n")
	if len(lines) != f.Rows() {
		t.Fatalf("got %d lines, want %d", len(lines), f.Rows())
	}
	center := lines[f.Rows()/2]
	if center[40] == ' ' {
		t.Errorf("sun missing from plain output: %q", center)
	}
}

func TestShadeLitSideBrighter(t *testing.T) {
	s := newEarthScene()
	m := &scene.Mesh{Radius: 1, Color: scene.RGB(0x2e8b57), Material: scene.MaterialPhong, Position: mgl64.Vec3{10, 0, 0}}

	// Hits the face toward the sun
	lit := camera.Ray{Origin: mgl64.Vec3{5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}
	// Hits the face away from the sun
	dark := camera.Ray{Origin: mgl64.Vec3{20, 0, 0}, Direction: mgl64.Vec3{-1, 0, 0}}

	tl, _ := lit.IntersectSphere(m.Position, m.Radius)
	td, _ := dark.IntersectSphere(m.Position, m.Radius)

	litColor := shade(s, m, lit, tl)
	darkColor := shade(s, m, dark, td)

	_, _, litL := litColor.Hcl()
	_, _, darkL := darkColor.Hcl()
	if litL <= darkL {
		t.Errorf("lit lightness %f <= dark lightness %f", litL, darkL)
	}

	want := m.Color.G * 0.4
	if math.Abs(darkColor.G-want) > 1e-9 {
		t.Errorf("unlit green = %f, want ambient-only %f", darkColor.G, want)
	}
}

func TestShadeBasicIgnoresLight(t *testing.T) {
	s := newEarthScene()
	ray := camera.Ray{Origin: mgl64.Vec3{0, 0, 10}, Direction: mgl64.Vec3{0, 0, -1}}
	if got := shade(s, s.Sun, ray, 8); got != s.Sun.Color {
		t.Errorf("basic material shaded to %v", got.Hex())
	}
}

func TestRendererSetSize(t *testing.T) {
	r := New(800, 600)
	r.SetSize(1600, 900)
	if w, h := r.Size(); w != 1600 || h != 900 {
		t.Errorf("Size() = %dx%d, want 1600x900", w, h)
	}
}

func TestSphereBoundsCoverHits(t *testing.T) {
	const w, h = 120, 60
	r := New(w, h)
	cam := camera.Default(float64(w) / h)
	cam.Position = mgl64.Vec3{4, 6, 18}
	proj := cam.Projector()
	s := newEarthScene()

	for _, m := range append([]*scene.Mesh{s.Sun}, s.Meshes()...) {
		b := r.sphereBounds(m, proj)
		for py := 0; py < h; py++ {
			for px := 0; px < w; px++ {
				ray := proj.Ray(session.ToNDC(float64(px)+0.5, float64(py)+0.5, w, h))
				if _, ok := ray.IntersectSphere(m.Position, m.Radius); !ok {
					continue
				}
				if px < b.x0 || px > b.x1 || py < b.y0 || py > b.y1 {
					t.Fatalf("%s hit at (%d, %d) outside bounds %+v", m.Name, px, py, b)
				}
			}
		}
	}
}

func TestSphereBoundsCameraInside(t *testing.T) {
	r := New(40, 20)
	cam := camera.Default(2)
	cam.Position = mgl64.Vec3{0, 0, 1}
	s := newEarthScene()

	b := r.sphereBounds(s.Sun, cam.Projector())
	if b != (pixelRect{0, 0, 39, 19}) {
		t.Errorf("bounds = %+v, want whole surface", b)
	}
}

func TestFrameStringReusesStyles(t *testing.T) {
	f := NewFrame(4, 4, session.DarkBackground)
	key := pairOf(session.DarkBackground, session.DarkBackground)

	first := f.String()
	styleMu.Lock()
	_, cached := styleCache[key]
	styleMu.Unlock()
	if !cached {
		t.Fatal("style for background pair not cached")
	}
	if again := f.String(); again != first {
		t.Errorf("second render differs: %q vs %q", again, first)
	}
	if strings.Count(first, "\n") != 1 {
		t.Errorf("frame has %d newlines, want 1", strings.Count(first, "\n"))
	}
}

func TestPairOfQuantizes(t *testing.T) {
	a := colorful.Color{R: 0.5, G: 0.25, B: 1.2}
	b := colorful.Color{R: 0.5 + 1e-9, G: 0.25, B: 1}
	if pairOf(a, a) != pairOf(b, b) {
		t.Error("colors rounding to the same 8-bit value produced different keys")
	}
}
