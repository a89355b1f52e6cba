// Command ls-orrery is an animated solar system rendered in the terminal.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/session"
	"github.com/litescript/ls-orrery/internal/ui"
)

func main() {
	isTTY := func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, isTTY))
}

// run executes the program and returns its exit status. Returning instead of
// exiting lets deferred cleanup, such as closing the log file, always run.
func run(args []string, stdout, stderr io.Writer, isTTY func() bool) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	sessionID := uuid.NewString()

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger.SetSession(sessionID)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting: fps=%d seed=%d", cfg.FPS, seed)

	sess := session.New(sessionID)
	sess.Paused = cfg.StartPaused
	sess.Dark = !cfg.LightMode

	model := ui.New(ui.Options{
		Session:       sess,
		Rand:          rand.New(rand.NewSource(seed)),
		FrameInterval: cfg.FrameInterval(),
		Damping:       cfg.Damping,
		TooltipOffset: mgl64.Vec2{cfg.TooltipOffsetX, cfg.TooltipOffsetY},
		Logger:        logger,
	})

	// Headless mode: no TUI
	if cfg.Headless() {
		runHeadless(stdout, cfg, model)
		return 0
	}

	if !isTTY() {
		logger.Error("stdout is not a terminal")
		fmt.Fprintln(stderr, "Error: stdout is not a terminal (use -summary or -snapshot)")
		return 1
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("tui: %v", err)
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	logger.Info("exit")
	return 0
}

// newLogger picks the log destination. The TUI owns the terminal, so it
// only logs when a file is given.
func newLogger(cfg config.Config, stderr io.Writer) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	switch {
	case cfg.LogFile != "":
		return logging.OpenFile(cfg.LogFile, level)
	case cfg.Headless():
		l := logging.New(level)
		l.SetOutput(stderr)
		return l, nil
	default:
		return logging.Discard(), nil
	}
}

func runHeadless(w io.Writer, cfg config.Config, model ui.Model) {
	model = model.Surface(cfg.Width, cfg.Height).RunFrames(cfg.Frames)

	if cfg.Snapshot {
		fmt.Fprintln(w, model.Snapshot())
	}
	if cfg.Summary {
		if cfg.Snapshot {
			fmt.Fprintln(w)
		}
		model.WriteSummary(w, time.Now())
	}
}
