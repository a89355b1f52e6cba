package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock draws the top pixel as foreground and the bottom pixel as background.
const halfBlock = '▀'

// plainRamp maps luminance contrast to glyphs for uncolored output.
const plainRamp = " .:-=+*#%@"

// cell is one overlay character.
type cell struct {
	r     rune
	fg    colorful.Color
	bg    colorful.Color
	hasBg bool
	set   bool
}

// Frame is a rendered image: a pixel surface with a depth buffer, plus a
// text overlay addressed in terminal cells. Each cell covers two pixel rows.
type Frame struct {
	Width  int // Pixels
	Height int // Pixels

	background colorful.Color
	pixels     []colorful.Color
	depth      []float64
	overlay    []cell
}

// NewFrame creates a frame cleared to bg.
func NewFrame(width, height int, bg colorful.Color) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{
		Width:      width,
		Height:     height,
		background: bg,
		pixels:     make([]colorful.Color, width*height),
		depth:      make([]float64, width*height),
	}
	f.overlay = make([]cell, f.Cols()*f.Rows())
	for i := range f.pixels {
		f.pixels[i] = bg
		f.depth[i] = math.Inf(1)
	}
	return f
}

// Cols returns the overlay width in cells.
func (f *Frame) Cols() int {
	return f.Width
}

// Rows returns the overlay height in cells.
func (f *Frame) Rows() int {
	return (f.Height + 1) / 2
}

// Background returns the clear color.
func (f *Frame) Background() colorful.Color {
	return f.background
}

// Pixel returns the color at (x, y).
func (f *Frame) Pixel(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return f.background
	}
	return f.pixels[y*f.Width+x]
}

// DepthAt returns the depth buffer value at (x, y).
func (f *Frame) DepthAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return math.Inf(1)
	}
	return f.depth[y*f.Width+x]
}

// SetPixel writes c at (x, y) if depth is nearer than what is stored.
func (f *Frame) SetPixel(x, y int, c colorful.Color, depth float64) bool {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return false
	}
	i := y*f.Width + x
	if depth >= f.depth[i] {
		return false
	}
	f.pixels[i] = c
	f.depth[i] = depth
	return true
}

// DrawText writes text into the overlay starting at cell (col, row). Cells
// outside the frame are dropped.
func (f *Frame) DrawText(col, row int, text string, fg colorful.Color) {
	f.drawText(col, row, text, fg, colorful.Color{}, false)
}

// DrawTextBox writes text with an opaque background.
func (f *Frame) DrawTextBox(col, row int, text string, fg, bg colorful.Color) {
	f.drawText(col, row, text, fg, bg, true)
}

func (f *Frame) drawText(col, row int, text string, fg, bg colorful.Color, hasBg bool) {
	if row < 0 || row >= f.Rows() {
		return
	}
	x := col
	for _, r := range text {
		if x >= f.Cols() {
			return
		}
		if x >= 0 {
			f.overlay[row*f.Cols()+x] = cell{r: r, fg: fg, bg: bg, hasBg: hasBg, set: true}
		}
		x++
	}
}

// OverlayRune returns the overlay character at (col, row), or 0 if none.
func (f *Frame) OverlayRune(col, row int) rune {
	if col < 0 || row < 0 || col >= f.Cols() || row >= f.Rows() {
		return 0
	}
	return f.overlay[row*f.Cols()+col].r
}

// OverlayLine returns the overlay text of a row with blanks for empty cells.
func (f *Frame) OverlayLine(row int) string {
	var b strings.Builder
	for col := 0; col < f.Cols(); col++ {
		if r := f.OverlayRune(col, row); r != 0 {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// cellColors returns the glyph and colors used to draw a cell.
func (f *Frame) cellColors(col, row int) (rune, colorful.Color, colorful.Color) {
	top := f.Pixel(col, row*2)
	bottom := f.Pixel(col, row*2+1)
	if c := f.overlay[row*f.Cols()+col]; c.set {
		bg := top.BlendRgb(bottom, 0.5)
		if c.hasBg {
			bg = c.bg
		}
		return c.r, c.fg, bg
	}
	return halfBlock, top, bottom
}

// colorPair keys a cell style by its 8-bit colors.
type colorPair struct {
	fr, fg, fb uint8
	br, bg, bb uint8
}

func pairOf(fg, bg colorful.Color) colorPair {
	var p colorPair
	p.fr, p.fg, p.fb = fg.Clamped().RGB255()
	p.br, p.bg, p.bb = bg.Clamped().RGB255()
	return p
}

// maxCachedStyles bounds the style cache; shaded spheres produce many pairs.
const maxCachedStyles = 8192

var (
	styleMu    sync.Mutex
	styleCache = make(map[colorPair]lipgloss.Style)
)

// cellStyle returns the cached style for a color pair.
func cellStyle(key colorPair) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	if style, ok := styleCache[key]; ok {
		return style
	}
	if len(styleCache) >= maxCachedStyles {
		clear(styleCache)
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", key.fr, key.fg, key.fb))).
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", key.br, key.bg, key.bb)))
	styleCache[key] = style
	return style
}

// String renders the frame as styled terminal text.
func (f *Frame) String() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < f.Rows(); row++ {
		var key colorPair
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cellStyle(key).Render(run.String()))
			run.Reset()
		}

		for col := 0; col < f.Cols(); col++ {
			r, fg, bg := f.cellColors(col, row)
			next := pairOf(fg, bg)
			if col == 0 || next != key {
				flush()
				key = next
			}
			run.WriteRune(r)
		}
		flush()
		if row < f.Rows()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// PlainString renders the frame without color, shading each cell by its
// contrast against the background.
func (f *Frame) PlainString() string {
	var b strings.Builder
	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			if c := f.overlay[row*f.Cols()+col]; c.set {
				b.WriteRune(c.r)
				continue
			}
			contrast := math.Max(
				f.Pixel(col, row*2).DistanceRgb(f.background),
				f.Pixel(col, row*2+1).DistanceRgb(f.background),
			)
			b.WriteByte(rampGlyph(contrast))
		}
		if row < f.Rows()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func rampGlyph(contrast float64) byte {
	if contrast <= 0 {
		return ' '
	}
	// RGB distance tops out at sqrt(3)
	idx := int(math.Ceil(contrast / math.Sqrt(3) * float64(len(plainRamp)-1)))
	if idx >= len(plainRamp) {
		idx = len(plainRamp) - 1
	}
	return plainRamp[idx]
}
