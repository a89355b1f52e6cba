// Package session holds the interactive state shared by the frame loop and
// the input handlers: the pause and theme flags and the last pointer position.
//
// All access happens on the Bubble Tea update goroutine, so nothing here is
// synchronized.
package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Background colors for each theme.
var (
	DarkBackground  = colorful.Color{R: 0, G: 0, B: 0}
	LightBackground = colorful.Color{R: 1, G: 1, B: 1}
)

// Session is the per-run UI state.
type Session struct {
	ID      string
	Paused  bool
	Dark    bool
	Pointer Pointer
}

// New creates a session in dark mode, running.
func New(id string) Session {
	return Session{ID: id, Dark: true}
}

// TogglePause flips the pause flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}

// ToggleTheme flips between dark and light mode and returns true when dark.
func (s *Session) ToggleTheme() bool {
	s.Dark = !s.Dark
	return s.Dark
}

// PauseLabel is the pause button text: the action a click performs.
func (s Session) PauseLabel() string {
	if s.Paused {
		return "Resume"
	}
	return "Pause"
}

// ThemeLabel is the theme button text: the theme a click switches to.
func (s Session) ThemeLabel() string {
	if s.Dark {
		return "Light Mode"
	}
	return "Dark Mode"
}

// Background returns the scene clear color for the current theme.
func (s Session) Background() colorful.Color {
	if s.Dark {
		return DarkBackground
	}
	return LightBackground
}

// Pointer is the last observed pointer position.
type Pointer struct {
	NDC     mgl64.Vec2 // Normalized device coordinates in [-1, 1]
	ScreenX float64    // Surface pixel coordinates
	ScreenY float64
	Seen    bool // False until the first pointer-move event
}

// Move records a pointer-move event at surface pixel (x, y) on a surface of
// the given size.
func (p *Pointer) Move(x, y, width, height float64) {
	p.ScreenX = x
	p.ScreenY = y
	p.NDC = ToNDC(x, y, width, height)
	p.Seen = true
}

// ToNDC maps surface pixel coordinates to normalized device coordinates,
// with +Y up.
func ToNDC(x, y, width, height float64) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/width*2 - 1,
		-(y/height)*2 + 1,
	}
}
