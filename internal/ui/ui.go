// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/session"
	"github.com/litescript/ls-orrery/internal/version"
)

// footerLines is the number of terminal rows below the canvas.
const footerLines = 1

// FrameMsg drives one animation frame.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	Session       session.Session
	Planets       []scene.PlanetDescriptor
	Rand          *rand.Rand
	FrameInterval time.Duration
	Damping       float64
	TooltipOffset mgl64.Vec2 // Surface pixels
	Logger        *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	logger        *logging.Logger
	frameInterval time.Duration

	// UI state
	session session.Session
	width   int
	height  int
	ready   bool
	frames  int

	// Sub-models
	orrery SolarSystemModel
}

// New creates the root model and bootstraps the scene.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	planets := opts.Planets
	if planets == nil {
		planets = scene.DefaultPlanets()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}

	s := scene.Bootstrap(planets, rng)
	logger.Info("scene ready: %d planets, %d stars", len(s.Planets), len(s.Stars.Points))

	return Model{
		logger:        logger,
		frameInterval: interval,
		session:       opts.Session,
		orrery:        NewSolarSystemModel(s, opts.Damping, opts.TooltipOffset),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frameInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.togglePause()
		case "t":
			m.toggleTheme()
		default:
			cmds = append(cmds, m.updateOrrery(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		canvasRows := msg.Height - footerLines
		if canvasRows < 1 {
			canvasRows = 1
		}
		m.orrery = m.orrery.SetSize(msg.Width, canvasRows)
		w, h := m.orrery.SurfaceSize()
		m.logger.Info("resize: %dx%d cells, surface %dx%d", msg.Width, msg.Height, w, h)

	case tea.MouseMsg:
		if !tea.MouseEvent(msg).IsWheel() {
			x, y := m.orrery.PixelAt(msg.X, msg.Y)
			w, h := m.orrery.SurfaceSize()
			m.session.Pointer.Move(x, y, float64(w), float64(h))
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			switch m.orrery.ButtonAt(msg.X, msg.Y, m.session) {
			case buttonPause:
				m.togglePause()
				return m, nil
			case buttonTheme:
				m.toggleTheme()
				return m, nil
			}
		}
		cmds = append(cmds, m.updateOrrery(msg))

	case FrameMsg:
		cmds = append(cmds, frameCmd(m.frameInterval))
		m.orrery = m.orrery.Step(m.session)
		m.frames++

	default:
		cmds = append(cmds, m.updateOrrery(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateOrrery(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.orrery, cmd = m.orrery.Update(msg)
	return cmd
}

func (m *Model) togglePause() {
	paused := m.session.TogglePause()
	m.logger.Debug("paused=%v", paused)
}

func (m *Model) toggleTheme() {
	dark := m.session.ToggleTheme()
	m.logger.Debug("dark=%v", dark)
}

// Session returns the current UI state.
func (m Model) Session() session.Session {
	return m.session
}

// Frames returns the number of frames processed.
func (m Model) Frames() int {
	return m.frames
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.orrery.View() + "\n" + m.renderFooter()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	hoverStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	status := accentStyle.Render("▶ running")
	if m.session.Paused {
		status = accentStyle.Render("❚❚ paused")
	}

	theme := "dark"
	if !m.session.Dark {
		theme = "light"
	}

	footer := " " + status + "  " + dimStyle.Render(fmt.Sprintf("theme:%s  frame:%d  v%s", theme, m.frames, version.Version))
	if name := m.orrery.Hovered(); name != "" {
		footer += "  " + hoverStyle.Render("◆ "+name)
	}
	footer += "  " + dimStyle.Render("|  space: pause | t: theme | drag: orbit | right-drag: pan | wheel/+/-: zoom | r: reset | q: quit")

	return footer
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
