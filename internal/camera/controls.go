package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DragMode selects what a pointer drag does.
type DragMode int

const (
	DragNone DragMode = iota
	DragRotate
	DragPan
)

const (
	// DefaultDampingFactor is the fraction of pending motion applied per update.
	DefaultDampingFactor = 0.05

	polarEpsilon = 1e-6
)

// spherical is a position relative to the orbit target.
// Theta is the azimuth around +Y measured from +Z; Phi is the polar angle from +Y.
type spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

func sphericalFromVector(v mgl64.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		Radius: r,
		Theta:  math.Atan2(v.X(), v.Z()),
		Phi:    math.Acos(mgl64.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vector() mgl64.Vec3 {
	sinPhiR := math.Sin(s.Phi) * s.Radius
	return mgl64.Vec3{
		sinPhiR * math.Sin(s.Theta),
		math.Cos(s.Phi) * s.Radius,
		sinPhiR * math.Cos(s.Theta),
	}
}

// OrbitControls orbits, pans and dollies a camera around its target. Input
// accumulates pending motion; Update applies it, spread over frames when
// damping is enabled.
type OrbitControls struct {
	Camera *Perspective

	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	PanSpeed      float64
	ZoomSpeed     float64
	KeyRotate     float64 // Radians per arrow-key press

	MinDistance   float64
	MaxDistance   float64
	MinPolarAngle float64
	MaxPolarAngle float64

	width, height float64

	delta     spherical // Pending theta/phi rotation
	scale     float64
	panOffset mgl64.Vec3

	mode         DragMode
	lastX, lastY float64
}

// NewOrbitControls attaches controls to cam. width and height are the input
// surface size in pixels.
func NewOrbitControls(cam *Perspective, width, height float64) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		DampingFactor: DefaultDampingFactor,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		KeyRotate:     math.Pi / 36,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
		width:         width,
		height:        height,
		scale:         1,
	}
}

// SetSize updates the input surface size used to scale drags.
func (c *OrbitControls) SetSize(width, height float64) {
	c.width = width
	c.height = height
}

// Dragging reports the active drag mode.
func (c *OrbitControls) Dragging() DragMode {
	return c.mode
}

// BeginDrag starts a rotate or pan gesture at (x, y).
func (c *OrbitControls) BeginDrag(mode DragMode, x, y float64) {
	c.mode = mode
	c.lastX = x
	c.lastY = y
}

// Drag continues the active gesture to (x, y).
func (c *OrbitControls) Drag(x, y float64) {
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX = x
	c.lastY = y

	if c.height <= 0 {
		return
	}

	switch c.mode {
	case DragRotate:
		c.RotateLeft(2 * math.Pi * dx / c.height * c.RotateSpeed)
		c.RotateUp(2 * math.Pi * dy / c.height * c.RotateSpeed)
	case DragPan:
		c.pan(dx*c.PanSpeed, dy*c.PanSpeed)
	}
}

// EndDrag finishes the active gesture.
func (c *OrbitControls) EndDrag() {
	c.mode = DragNone
}

// RotateLeft queues an azimuth rotation.
func (c *OrbitControls) RotateLeft(angle float64) {
	c.delta.Theta -= angle
}

// RotateUp queues a polar rotation.
func (c *OrbitControls) RotateUp(angle float64) {
	c.delta.Phi -= angle
}

// Dolly moves the camera toward (steps > 0) or away from (steps < 0) the target.
func (c *OrbitControls) Dolly(steps int) {
	zoom := math.Pow(0.95, c.ZoomSpeed)
	for ; steps > 0; steps-- {
		c.scale *= zoom
	}
	for ; steps < 0; steps++ {
		c.scale /= zoom
	}
}

// pan shifts the target by a screen-space delta in pixels.
func (c *OrbitControls) pan(dx, dy float64) {
	cam := c.Camera
	offset := cam.Position.Sub(cam.Target)
	targetDistance := offset.Len() * math.Tan(mgl64.DegToRad(cam.FOV/2))

	forward := offset.Mul(-1).Normalize()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward)

	left := right.Mul(-2 * dx * targetDistance / c.height)
	upward := up.Mul(2 * dy * targetDistance / c.height)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

// Update applies pending motion to the camera and reports whether it moved.
func (c *OrbitControls) Update() bool {
	cam := c.Camera
	before := cam.Position

	offset := cam.Position.Sub(cam.Target)
	s := sphericalFromVector(offset)

	if c.EnableDamping {
		s.Theta += c.delta.Theta * c.DampingFactor
		s.Phi += c.delta.Phi * c.DampingFactor
	} else {
		s.Theta += c.delta.Theta
		s.Phi += c.delta.Phi
	}

	minPhi := math.Max(c.MinPolarAngle, polarEpsilon)
	maxPhi := math.Min(c.MaxPolarAngle, math.Pi-polarEpsilon)
	s.Phi = mgl64.Clamp(s.Phi, minPhi, maxPhi)

	s.Radius = mgl64.Clamp(s.Radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		cam.Target = cam.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		cam.Target = cam.Target.Add(c.panOffset)
	}

	cam.Position = cam.Target.Add(s.vector())

	if c.EnableDamping {
		c.delta.Theta *= 1 - c.DampingFactor
		c.delta.Phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.delta = spherical{}
		c.panOffset = mgl64.Vec3{}
	}
	c.scale = 1

	return cam.Position.Sub(before).Len() > 1e-9
}

// Reset clears pending motion and returns the camera to its start pose.
func (c *OrbitControls) Reset() {
	c.delta = spherical{}
	c.panOffset = mgl64.Vec3{}
	c.scale = 1
	c.mode = DragNone
	c.Camera.Position = DefaultPosition
	c.Camera.Target = mgl64.Vec3{}
}
