package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Material selects how a mesh responds to light.
type Material int

const (
	// MaterialBasic ignores lighting and renders the flat color.
	MaterialBasic Material = iota
	// MaterialPhong applies ambient, diffuse and specular lighting.
	MaterialPhong
)

// Mesh is a sphere placed in world space.
type Mesh struct {
	Name     string
	Radius   float64
	Color    colorful.Color
	Material Material
	Position mgl64.Vec3
	Label    *Sprite // nil when the mesh has no label
}

// Sprite is a camera-facing text label positioned relative to its parent mesh.
type Sprite struct {
	Text     string
	Color    colorful.Color
	Position mgl64.Vec3 // Local offset from the parent mesh
}

// LabelWorldPosition returns the world position of the mesh's label.
func (m *Mesh) LabelWorldPosition() mgl64.Vec3 {
	if m.Label == nil {
		return m.Position
	}
	return m.Position.Add(m.Label.Position)
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float64
}

// PointLight emits in all directions from a position.
type PointLight struct {
	Color     colorful.Color
	Intensity float64
	Position  mgl64.Vec3
}

// Starfield is a cloud of single-pixel points.
type Starfield struct {
	Points []mgl64.Vec3
	Color  colorful.Color
}

// OrbitRing is a dashed polyline tracing a planet's orbit.
type OrbitRing struct {
	Name      string // Planet the ring belongs to
	Points    []mgl64.Vec3
	Distances []float64 // Cumulative line distance at each point
	Color     colorful.Color
	DashSize  float64
	GapSize   float64
}

// computeLineDistances fills Distances with the running length along Points.
func (o *OrbitRing) computeLineDistances() {
	o.Distances = make([]float64, len(o.Points))
	for i := 1; i < len(o.Points); i++ {
		o.Distances[i] = o.Distances[i-1] + o.Points[i].Sub(o.Points[i-1]).Len()
	}
}

// Dashed reports whether the given line distance falls on a dash rather than a gap.
func (o *OrbitRing) Dashed(distance float64) bool {
	period := o.DashSize + o.GapSize
	if period <= 0 {
		return true
	}
	return math.Mod(distance, period) < o.DashSize
}
