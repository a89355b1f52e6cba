package ui

import (
	"io"
	"time"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Surface sizes the canvas in pixels rather than terminal cells, for use
// without a terminal.
func (m Model) Surface(width, height int) Model {
	m.width = width
	m.height = (height + 1) / 2
	m.ready = true
	m.orrery.cols = width
	m.orrery.rows = m.height
	m.orrery.Resize(width, height)
	return m
}

// RunFrames steps the animation n times without a program loop.
func (m Model) RunFrames(n int) Model {
	for i := 0; i < n; i++ {
		m.orrery = m.orrery.Step(m.session)
		m.frames++
	}
	return m
}

// Snapshot renders the current scene as plain text without advancing it.
func (m Model) Snapshot() string {
	m.orrery = m.orrery.Draw(m.session)
	return m.orrery.frame.PlainString()
}

// WriteSummary writes the planet table for the current frame.
func (m Model) WriteSummary(w io.Writer, timestamp time.Time) {
	scene.WriteSummaryTable(w, m.orrery.scene, m.frames, m.session.ID, timestamp)
}
