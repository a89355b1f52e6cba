// Package scene builds and animates the orrery scene graph: the sun, lights,
// starfield, planets with their label sprites, dashed orbit rings and the
// tooltip nodes attached to each planet.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// PlanetDescriptor is the static definition of one planet.
type PlanetDescriptor struct {
	Name         string
	Color        colorful.Color
	Radius       float64 // Sphere radius in world units
	OrbitRadius  float64 // Distance from the origin in world units
	AngularSpeed float64 // Radians advanced per displayed frame
}

// DefaultPlanets returns the eight planets in orbital order.
func DefaultPlanets() []PlanetDescriptor {
	return []PlanetDescriptor{
		{Name: "Mercury", Color: RGB(0x909090), Radius: 0.2, OrbitRadius: 5, AngularSpeed: 0.02},
		{Name: "Venus", Color: RGB(0xeccc9a), Radius: 0.4, OrbitRadius: 7, AngularSpeed: 0.015},
		{Name: "Earth", Color: RGB(0x2e8b57), Radius: 0.5, OrbitRadius: 10, AngularSpeed: 0.01},
		{Name: "Mars", Color: RGB(0xb22222), Radius: 0.3, OrbitRadius: 13, AngularSpeed: 0.008},
		{Name: "Jupiter", Color: RGB(0xd2b48c), Radius: 1.2, OrbitRadius: 17, AngularSpeed: 0.005},
		{Name: "Saturn", Color: RGB(0xf5deb3), Radius: 1.0, OrbitRadius: 21, AngularSpeed: 0.003},
		{Name: "Uranus", Color: RGB(0x66cccc), Radius: 0.8, OrbitRadius: 25, AngularSpeed: 0.002},
		{Name: "Neptune", Color: RGB(0x2f4f4f), Radius: 0.8, OrbitRadius: 29, AngularSpeed: 0.0015},
	}
}

// RGB converts a 0xRRGGBB value to a color.
func RGB(hex uint32) colorful.Color {
	return colorful.Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}
