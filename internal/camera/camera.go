// Package camera provides the perspective camera, ray casting against scene
// meshes and damped orbit controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Default camera parameters.
const (
	DefaultFOV  = 75.0 // Vertical field of view in degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// DefaultPosition is where the camera starts, looking at the origin.
var DefaultPosition = mgl64.Vec3{0, 10, 50}

// Perspective is a perspective-projection camera looking at a target point.
type Perspective struct {
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Width / height
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	projection mgl64.Mat4
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float64) *Perspective {
	c := &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// Default creates the orrery camera for the given aspect ratio.
func Default(aspect float64) *Perspective {
	c := NewPerspective(DefaultFOV, aspect, DefaultNear, DefaultFar)
	c.Position = DefaultPosition
	c.LookAt(mgl64.Vec3{})
	return c
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target mgl64.Vec3) {
	c.Target = target
}

// SetAspect changes the aspect ratio. Call UpdateProjectionMatrix afterwards.
func (c *Perspective) SetAspect(aspect float64) {
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near and Far.
func (c *Perspective) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projection returns the current projection matrix.
func (c *Perspective) Projection() mgl64.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projector captures the camera's current matrices for repeated projection.
func (c *Perspective) Projector() Projector {
	vp := c.projection.Mul4(c.View())
	return Projector{
		Position:   c.Position,
		viewProj:   vp,
		inverseVP:  vp.Inv(),
		viewMatrix: c.View(),
	}
}

// Project maps a world point to normalized device coordinates.
func (c *Perspective) Project(world mgl64.Vec3) (mgl64.Vec3, bool) {
	return c.Projector().Project(world)
}

// Ray returns the ray from the camera through the given NDC point.
func (c *Perspective) Ray(ndc mgl64.Vec2) Ray {
	return c.Projector().Ray(ndc)
}

// Projector projects and unprojects with a fixed camera state. Build one per
// frame when projecting many points.
type Projector struct {
	Position   mgl64.Vec3
	viewProj   mgl64.Mat4
	inverseVP  mgl64.Mat4
	viewMatrix mgl64.Mat4
}

// Project maps a world point to NDC. ok is false when the point lies behind
// the camera or outside the near/far range.
func (p Projector) Project(world mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := p.viewProj.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl64.Vec3{}, false
	}
	ndc = clip.Vec3().Mul(1 / w)
	return ndc, ndc.Z() >= -1 && ndc.Z() <= 1
}

// Unproject maps an NDC point back to world space.
func (p Projector) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	v := p.inverseVP.Mul4x1(ndc.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

// Ray returns the ray from the camera position through the NDC point.
func (p Projector) Ray(ndc mgl64.Vec2) Ray {
	through := p.Unproject(mgl64.Vec3{ndc.X(), ndc.Y(), 0.5})
	return Ray{
		Origin:    p.Position,
		Direction: through.Sub(p.Position).Normalize(),
	}
}

// RayGrid spans the rays through pixel centers of a width x height surface.
type RayGrid struct {
	Origin mgl64.Vec3
	base   mgl64.Vec3 // Unprojected center of pixel (0, 0)
	stepX  mgl64.Vec3
	stepY  mgl64.Vec3
}

// RayGrid builds the per-pixel ray basis for a surface. Points unprojected at
// a fixed NDC depth lie on one plane, so they are affine in the pixel position.
func (p Projector) RayGrid(width, height int) RayGrid {
	w, h := float64(width), float64(height)
	at := func(x, y float64) mgl64.Vec3 {
		ndc := mgl64.Vec3{x/w*2 - 1, -(y/h)*2 + 1, 0.5}
		return p.Unproject(ndc)
	}
	base := at(0.5, 0.5)
	return RayGrid{
		Origin: p.Position,
		base:   base,
		stepX:  at(1.5, 0.5).Sub(base),
		stepY:  at(0.5, 1.5).Sub(base),
	}
}

// At returns the ray through the center of pixel (px, py).
func (g RayGrid) At(px, py int) Ray {
	through := g.base.Add(g.stepX.Mul(float64(px))).Add(g.stepY.Mul(float64(py)))
	return Ray{
		Origin:    g.Origin,
		Direction: through.Sub(g.Origin).Normalize(),
	}
}

// Depth returns the distance along the view axis to a world point.
func (p Projector) Depth(world mgl64.Vec3) float64 {
	return -p.viewMatrix.Mul4x1(world.Vec4(1)).Z()
}
