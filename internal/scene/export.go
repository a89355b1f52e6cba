package scene

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// SummaryRow is one planet's state in a headless summary.
type SummaryRow struct {
	Name  string
	Angle float64 // Radians, wrapped to [0, 2π)
	X     float64
	Y     float64
	Z     float64
}

// GenerateSummaryRows returns one row per planet in table order.
func GenerateSummaryRows(s *Scene) []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.Planets))
	for _, p := range s.Planets {
		pos := p.Mesh.Position
		rows = append(rows, SummaryRow{
			Name:  p.Descriptor.Name,
			Angle: wrapAngle(p.Angle),
			X:     pos.X(),
			Y:     pos.Y(),
			Z:     pos.Z(),
		})
	}
	return rows
}

// WriteSummaryTable writes the planet table after the given number of frames.
func WriteSummaryTable(w io.Writer, s *Scene, frames int, sessionID string, timestamp time.Time) {
	rows := GenerateSummaryRows(s)

	fmt.Fprintf(w, "Orrery @ %s  session %s  frame %d\n", timestamp.Format(time.RFC3339), sessionID, frames)
	fmt.Fprintln(w, strings.Repeat("─", 56))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No planets")
		return
	}

	fmt.Fprintf(w, "%-8s %8s %12s %12s %12s\n", "Planet", "Angle", "X", "Y", "Z")
	fmt.Fprintln(w, strings.Repeat("─", 56))

	for _, r := range rows {
		fmt.Fprintf(w, "%-8s %7.1f° %12.3f %12.3f %12.3f\n",
			truncateStr(r.Name, 8),
			r.Angle*180/math.Pi,
			r.X, r.Y, r.Z,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d planets, %d stars\n", len(rows), len(s.Stars.Points))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
