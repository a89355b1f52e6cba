package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// StarCount is the number of background stars.
	StarCount = 1000
	// StarSpread is the edge length of the cube stars are sampled from, centered on the origin.
	StarSpread = 600.0

	// SunRadius is the radius of the sun sphere.
	SunRadius = 2.0

	// OrbitSegments is the number of segments in each orbit ring (OrbitSegments+1 points).
	OrbitSegments = 64
	orbitDashSize = 0.3
	orbitGapSize  = 0.2

	// LabelHeight is the vertical offset of a label above its planet's origin.
	LabelHeight = 1.5
)

// LabelOffset is the local position of every planet label.
var LabelOffset = mgl64.Vec3{0, LabelHeight, 0}

var white = colorful.Color{R: 1, G: 1, B: 1}

// PlanetState is the mutable per-planet record advanced every frame.
type PlanetState struct {
	Descriptor PlanetDescriptor
	Angle      float64 // Radians; wraps implicitly through sin/cos
	Mesh       *Mesh
	Tooltip    *Tooltip
}

// Reposition places the mesh on its circular orbit in the XZ plane.
func (p *PlanetState) Reposition() {
	r := p.Descriptor.OrbitRadius
	p.Mesh.Position = mgl64.Vec3{r * math.Cos(p.Angle), 0, r * math.Sin(p.Angle)}
}

// Scene is the complete orrery scene graph.
type Scene struct {
	Sun      *Mesh
	Ambient  AmbientLight
	Light    PointLight
	Stars    Starfield
	Planets  []*PlanetState // Table order, never reordered
	Orbits   []*OrbitRing
	Tooltips *TooltipRegistry
}

// Bootstrap builds the scene for the given planet table. rng supplies the
// starfield and each planet's initial angle.
func Bootstrap(planets []PlanetDescriptor, rng *rand.Rand) *Scene {
	s := &Scene{
		Sun: &Mesh{
			Name:     "Sun",
			Radius:   SunRadius,
			Color:    RGB(0xffff00),
			Material: MaterialBasic,
		},
		Ambient:  AmbientLight{Color: white, Intensity: 0.4},
		Light:    PointLight{Color: white, Intensity: 2},
		Stars:    newStarfield(rng),
		Tooltips: NewTooltipRegistry(),
	}

	for _, d := range planets {
		mesh := &Mesh{
			Name:     d.Name,
			Radius:   d.Radius,
			Color:    d.Color,
			Material: MaterialPhong,
			Label: &Sprite{
				Text:     d.Name,
				Color:    white,
				Position: LabelOffset,
			},
		}
		p := &PlanetState{
			Descriptor: d,
			Angle:      rng.Float64() * 2 * math.Pi,
			Mesh:       mesh,
			Tooltip:    s.Tooltips.Attach(d.Name, d.Name),
		}
		p.Reposition()

		s.Planets = append(s.Planets, p)
		s.Orbits = append(s.Orbits, newOrbitRing(d))
	}

	return s
}

func newStarfield(rng *rand.Rand) Starfield {
	points := make([]mgl64.Vec3, StarCount)
	for i := range points {
		points[i] = mgl64.Vec3{
			randSpread(rng, StarSpread),
			randSpread(rng, StarSpread),
			randSpread(rng, StarSpread),
		}
	}
	return Starfield{Points: points, Color: white}
}

// randSpread returns a uniform value in [-spread/2, spread/2).
func randSpread(rng *rand.Rand, spread float64) float64 {
	return spread * (0.5 - rng.Float64())
}

func newOrbitRing(d PlanetDescriptor) *OrbitRing {
	ring := &OrbitRing{
		Name:     d.Name,
		Points:   make([]mgl64.Vec3, OrbitSegments+1),
		Color:    white,
		DashSize: orbitDashSize,
		GapSize:  orbitGapSize,
	}
	for i := range ring.Points {
		theta := float64(i) / OrbitSegments * 2 * math.Pi
		ring.Points[i] = mgl64.Vec3{
			math.Cos(theta) * d.OrbitRadius,
			0,
			math.Sin(theta) * d.OrbitRadius,
		}
	}
	ring.computeLineDistances()
	return ring
}

// Advance runs the scene half of one animation frame: unless paused every
// planet's angle grows by its angular speed, then meshes are placed on their
// orbits and labels reset to their offset.
func (s *Scene) Advance(paused bool) {
	for _, p := range s.Planets {
		if !paused {
			p.Angle += p.Descriptor.AngularSpeed
		}
		p.Reposition()
		if p.Mesh.Label != nil {
			p.Mesh.Label.Position = LabelOffset
		}
	}
}

// Meshes returns the planet meshes in table order.
func (s *Scene) Meshes() []*Mesh {
	meshes := make([]*Mesh, len(s.Planets))
	for i, p := range s.Planets {
		meshes[i] = p.Mesh
	}
	return meshes
}

// Planet returns the state for the named planet.
func (s *Scene) Planet(name string) (*PlanetState, bool) {
	for _, p := range s.Planets {
		if p.Descriptor.Name == name {
			return p, true
		}
	}
	return nil, false
}

// RemovePlanet drops a planet, its orbit ring and its tooltip node.
func (s *Scene) RemovePlanet(name string) bool {
	idx := -1
	for i, p := range s.Planets {
		if p.Descriptor.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Planets = append(s.Planets[:idx], s.Planets[idx+1:]...)
	for i, o := range s.Orbits {
		if o.Name == name {
			s.Orbits = append(s.Orbits[:i], s.Orbits[i+1:]...)
			break
		}
	}
	s.Tooltips.Detach(name)
	return true
}
