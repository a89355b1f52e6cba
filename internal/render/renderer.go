// Package render rasterizes the orrery scene into a terminal frame.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Phong material parameters for planets.
const (
	shininess         = 30.0
	specularStrength  = 0x11 / 255.0
	maxSegmentSamples = 4096
)

// Renderer draws scenes onto a pixel surface of a fixed size.
type Renderer struct {
	width  int
	height int
}

// New creates a renderer with the given surface size in pixels.
func New(width, height int) *Renderer {
	r := &Renderer{}
	r.SetSize(width, height)
	return r
}

// SetSize resizes the output surface.
func (r *Renderer) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.width = width
	r.height = height
}

// Size returns the output surface size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws the scene from the camera's point of view.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective, bg colorful.Color) *Frame {
	f := NewFrame(r.width, r.height, bg)
	if r.width == 0 || r.height == 0 {
		return f
	}

	proj := cam.Projector()

	r.drawSpheres(f, s, proj)
	r.drawStars(f, s, proj)
	for _, ring := range s.Orbits {
		r.drawOrbit(f, ring, proj)
	}
	r.drawLabels(f, s, proj)

	return f
}

// toPixel maps NDC to surface pixel coordinates.
func (r *Renderer) toPixel(ndc mgl64.Vec3) (int, int) {
	x := (ndc.X() + 1) / 2 * float64(r.width)
	y := (1 - ndc.Y()) / 2 * float64(r.height)
	return int(math.Floor(x)), int(math.Floor(y))
}

// drawSpheres ray-casts every pixel against the sun and planets. Each sphere
// is only tested inside its projected screen bounds.
func (r *Renderer) drawSpheres(f *Frame, s *scene.Scene, proj camera.Projector) {
	meshes := append([]*scene.Mesh{s.Sun}, s.Meshes()...)
	bounds := make([]pixelRect, len(meshes))
	for i, m := range meshes {
		bounds[i] = r.sphereBounds(m, proj)
	}
	grid := proj.RayGrid(r.width, r.height)

	row := make([]int, 0, len(meshes))
	for py := 0; py < r.height; py++ {
		row = row[:0]
		for i, b := range bounds {
			if py >= b.y0 && py <= b.y1 {
				row = append(row, i)
			}
		}
		if len(row) == 0 {
			continue
		}

		for px := 0; px < r.width; px++ {
			var nearest *scene.Mesh
			var ray camera.Ray
			cast := false
			best := math.Inf(1)
			for _, i := range row {
				if px < bounds[i].x0 || px > bounds[i].x1 {
					continue
				}
				if !cast {
					ray = grid.At(px, py)
					cast = true
				}
				m := meshes[i]
				if t, ok := ray.IntersectSphere(m.Position, m.Radius); ok && t < best {
					best = t
					nearest = m
				}
			}
			if nearest == nil {
				continue
			}
			f.SetPixel(px, py, shade(s, nearest, ray, best), best)
		}
	}
}

// pixelRect is an inclusive pixel range. An empty rect has x0 > x1.
type pixelRect struct {
	x0, y0, x1, y1 int
}

// sphereBounds returns the pixels a sphere can cover, from the projected
// corners of its bounding cube. A cube crossing the near plane gets the whole
// surface.
func (r *Renderer) sphereBounds(m *scene.Mesh, proj camera.Projector) pixelRect {
	full := pixelRect{0, 0, r.width - 1, r.height - 1}
	if m.Position.Sub(proj.Position).Len() <= m.Radius*math.Sqrt(3) {
		return full
	}

	b := pixelRect{math.MaxInt, math.MaxInt, math.MinInt, math.MinInt}
	for _, dx := range []float64{-1, 1} {
		for _, dy := range []float64{-1, 1} {
			for _, dz := range []float64{-1, 1} {
				corner := m.Position.Add(mgl64.Vec3{dx, dy, dz}.Mul(m.Radius))
				ndc, ok := proj.Project(corner)
				if !ok {
					return full
				}
				x := (ndc.X() + 1) / 2 * float64(r.width)
				y := (1 - ndc.Y()) / 2 * float64(r.height)
				b.x0 = min(b.x0, int(math.Floor(x)))
				b.x1 = max(b.x1, int(math.Ceil(x)))
				b.y0 = min(b.y0, int(math.Floor(y)))
				b.y1 = max(b.y1, int(math.Ceil(y)))
			}
		}
	}
	b.x0 = max(b.x0, 0)
	b.y0 = max(b.y0, 0)
	b.x1 = min(b.x1, r.width-1)
	b.y1 = min(b.y1, r.height-1)
	return b
}

// shade computes a sphere surface color at distance t along ray.
func shade(s *scene.Scene, m *scene.Mesh, ray camera.Ray, t float64) colorful.Color {
	if m.Material == scene.MaterialBasic {
		return m.Color
	}

	hit := ray.At(t)
	n := hit.Sub(m.Position).Normalize()
	toLight := s.Light.Position.Sub(hit)
	if toLight.Len() == 0 {
		toLight = n
	}
	l := toLight.Normalize()
	v := ray.Direction.Mul(-1)

	diffuse := math.Max(0, n.Dot(l)) * s.Light.Intensity
	reflected := n.Mul(2 * n.Dot(l)).Sub(l)
	specular := 0.0
	if n.Dot(l) > 0 {
		specular = math.Pow(math.Max(0, reflected.Dot(v)), shininess) * specularStrength * s.Light.Intensity
	}

	amb := s.Ambient.Color
	light := s.Light.Color
	ai := s.Ambient.Intensity
	c := colorful.Color{
		R: m.Color.R*(amb.R*ai+light.R*diffuse) + light.R*specular,
		G: m.Color.G*(amb.G*ai+light.G*diffuse) + light.G*specular,
		B: m.Color.B*(amb.B*ai+light.B*diffuse) + light.B*specular,
	}
	return c.Clamped()
}

func (r *Renderer) drawStars(f *Frame, s *scene.Scene, proj camera.Projector) {
	for _, p := range s.Stars.Points {
		ndc, ok := proj.Project(p)
		if !ok {
			continue
		}
		x, y := r.toPixel(ndc)
		f.SetPixel(x, y, s.Stars.Color, p.Sub(proj.Position).Len())
	}
}

// drawOrbit samples each ring segment densely enough to cover every pixel it
// crosses and keeps only samples that fall on a dash.
func (r *Renderer) drawOrbit(f *Frame, ring *scene.OrbitRing, proj camera.Projector) {
	for i := 0; i+1 < len(ring.Points); i++ {
		a, b := ring.Points[i], ring.Points[i+1]
		seg := b.Sub(a)
		segLen := seg.Len()

		steps := r.segmentSteps(a, b, proj)
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			if !ring.Dashed(ring.Distances[i] + segLen*t) {
				continue
			}
			p := a.Add(seg.Mul(t))
			ndc, ok := proj.Project(p)
			if !ok {
				continue
			}
			x, y := r.toPixel(ndc)
			f.SetPixel(x, y, ring.Color, p.Sub(proj.Position).Len())
		}
	}
}

func (r *Renderer) segmentSteps(a, b mgl64.Vec3, proj camera.Projector) int {
	na, okA := proj.Project(a)
	nb, okB := proj.Project(b)
	if !okA || !okB {
		return 64
	}
	ax, ay := r.toPixel(na)
	bx, by := r.toPixel(nb)
	pixels := math.Hypot(float64(bx-ax), float64(by-ay))
	// Oversample so dash boundaries land inside single pixels
	steps := int(pixels*4) + 1
	if steps > maxSegmentSamples {
		steps = maxSegmentSamples
	}
	return steps
}

// drawLabels centers each planet's label text over its sprite position.
func (r *Renderer) drawLabels(f *Frame, s *scene.Scene, proj camera.Projector) {
	for _, p := range s.Planets {
		label := p.Mesh.Label
		if label == nil {
			continue
		}
		ndc, ok := proj.Project(p.Mesh.LabelWorldPosition())
		if !ok {
			continue
		}
		x, y := r.toPixel(ndc)
		if y < 0 {
			continue
		}
		col := x - len(label.Text)/2
		f.DrawText(col, y/2, label.Text, label.Color)
	}
}
