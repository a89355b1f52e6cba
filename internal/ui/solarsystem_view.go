package ui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/session"
)

// buttonKind identifies an on-screen button.
type buttonKind int

const (
	buttonNone buttonKind = iota
	buttonPause
	buttonTheme
)

var (
	buttonFg  = colorful.Color{R: 0, G: 0, B: 0}
	buttonBg  = colorful.Color{R: 0.88, G: 0.88, B: 0.88}
	tooltipFg = colorful.Color{R: 1, G: 1, B: 1}
)

// button is a clickable label in the top canvas row.
type button struct {
	kind buttonKind
	col  int
	row  int
	text string
}

func (b button) contains(col, row int) bool {
	return row == b.row && col >= b.col && col < b.col+len([]rune(b.text))
}

// SolarSystemModel renders the orrery in perspective and handles camera input.
type SolarSystemModel struct {
	scene     *scene.Scene
	camera    *camera.Perspective
	controls  *camera.OrbitControls
	renderer  *render.Renderer
	raycaster *camera.Raycaster

	tooltipOffset mgl64.Vec2

	cols    int // Canvas size in terminal cells
	rows    int
	frame   *render.Frame
	hovered string // Planet under the pointer, if any
}

// NewSolarSystemModel wraps a bootstrapped scene with a camera, damped orbit
// controls and a renderer.
func NewSolarSystemModel(s *scene.Scene, damping float64, tooltipOffset mgl64.Vec2) SolarSystemModel {
	cam := camera.Default(1)
	controls := camera.NewOrbitControls(cam, 0, 0)
	controls.EnableDamping = true
	if damping > 0 {
		controls.DampingFactor = damping
	}

	return SolarSystemModel{
		scene:         s,
		camera:        cam,
		controls:      controls,
		renderer:      render.New(0, 0),
		raycaster:     camera.NewRaycaster(),
		tooltipOffset: tooltipOffset,
	}
}

// SetSize sets the canvas size in terminal cells.
func (m SolarSystemModel) SetSize(cols, rows int) SolarSystemModel {
	m.cols = cols
	m.rows = rows
	m.Resize(cols, rows*2)
	return m
}

// Resize keeps the camera aspect, renderer surface and control scaling in
// step with a surface of width x height pixels.
func (m *SolarSystemModel) Resize(width, height int) {
	if height > 0 {
		m.camera.SetAspect(float64(width) / float64(height))
	}
	m.camera.UpdateProjectionMatrix()
	m.renderer.SetSize(width, height)
	m.controls.SetSize(float64(width), float64(height))
}

// SurfaceSize returns the render surface size in pixels.
func (m SolarSystemModel) SurfaceSize() (int, int) {
	return m.renderer.Size()
}

// PixelAt maps a terminal cell to the surface pixel at its center.
func (m SolarSystemModel) PixelAt(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

// Update handles camera input.
func (m SolarSystemModel) Update(msg tea.Msg) (SolarSystemModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			m.controls.RotateLeft(m.controls.KeyRotate)
		case "right":
			m.controls.RotateLeft(-m.controls.KeyRotate)
		case "up":
			m.controls.RotateUp(m.controls.KeyRotate)
		case "down":
			m.controls.RotateUp(-m.controls.KeyRotate)
		case "+", "=":
			m.controls.Dolly(1)
		case "-":
			m.controls.Dolly(-1)
		case "r":
			m.controls.Reset()
		}

	case tea.MouseMsg:
		x, y := m.PixelAt(msg.X, msg.Y)
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.controls.Dolly(1)
		case msg.Button == tea.MouseButtonWheelDown:
			m.controls.Dolly(-1)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.controls.BeginDrag(camera.DragRotate, x, y)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
			m.controls.BeginDrag(camera.DragPan, x, y)
		case msg.Action == tea.MouseActionMotion && m.controls.Dragging() != camera.DragNone:
			m.controls.Drag(x, y)
		case msg.Action == tea.MouseActionRelease:
			m.controls.EndDrag()
		}
	}
	return m, nil
}

// Step runs one animation frame: Advance, then Draw.
func (m SolarSystemModel) Step(sess session.Session) SolarSystemModel {
	m.Advance(sess.Paused)
	return m.Draw(sess)
}

// Advance moves the planets unless paused and applies camera damping.
func (m *SolarSystemModel) Advance(paused bool) {
	m.scene.Advance(paused)
	m.controls.Update()
}

// Draw hit-tests the pointer, then renders the scene, buttons and tooltip.
// The hit-test runs before rendering so the tooltip drawn matches the
// geometry of the same frame.
func (m SolarSystemModel) Draw(sess session.Session) SolarSystemModel {
	m.hitTest(sess.Pointer)

	m.frame = m.renderer.Render(m.scene, m.camera, sess.Background())
	m.drawButtons(m.frame, sess)
	m.drawTooltip(m.frame)
	return m
}

// hitTest casts a ray through the pointer and shows the tooltip of the
// nearest planet under it, hiding all others.
func (m *SolarSystemModel) hitTest(p session.Pointer) {
	m.scene.Tooltips.HideAll()
	m.hovered = ""
	if !p.Seen {
		return
	}

	m.raycaster.SetFromCamera(p.NDC, m.camera)
	hits := m.raycaster.IntersectObjects(m.scene.Meshes())
	if len(hits) == 0 {
		return
	}

	name := hits[0].Object.Name
	if m.scene.Tooltips.Show(name, p.ScreenX+m.tooltipOffset.X(), p.ScreenY+m.tooltipOffset.Y()) {
		m.hovered = name
	}
}

func (m SolarSystemModel) buttons(sess session.Session) []button {
	theme := "[ " + sess.ThemeLabel() + " ]"
	return []button{
		{kind: buttonPause, col: 1, row: 0, text: "[ " + sess.PauseLabel() + " ]"},
		{kind: buttonTheme, col: m.cols - len(theme) - 1, row: 0, text: theme},
	}
}

// ButtonAt returns the button under a terminal cell.
func (m SolarSystemModel) ButtonAt(col, row int, sess session.Session) buttonKind {
	for _, b := range m.buttons(sess) {
		if b.contains(col, row) {
			return b.kind
		}
	}
	return buttonNone
}

func (m SolarSystemModel) drawButtons(f *render.Frame, sess session.Session) {
	for _, b := range m.buttons(sess) {
		f.DrawTextBox(b.col, b.row, b.text, buttonFg, buttonBg)
	}
}

func (m SolarSystemModel) drawTooltip(f *render.Frame) {
	tip, ok := m.scene.Tooltips.Visible()
	if !ok {
		return
	}
	col := int(math.Floor(tip.Left))
	row := int(math.Floor(tip.Top / 2))
	f.DrawText(col, row, tip.Text, tooltipFg)
}

// Hovered returns the name of the planet under the pointer.
func (m SolarSystemModel) Hovered() string {
	return m.hovered
}

// View renders the last frame.
func (m SolarSystemModel) View() string {
	if m.frame == nil {
		return ""
	}
	return m.frame.String()
}
