// Package render turns resolved telemetry items into styled terminal cells.
// It provides the cell Surface renderers draw into, the content-type
// dispatch that routes each item to exactly one renderer, and the frame
// cache that keeps the expensive decorative chrome off the per-frame path.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one terminal cell: a rune plus its foreground and background
// colors. Empty colors mean the terminal default.
type Cell struct {
	Rune rune
	Fg   lipgloss.Color
	Bg   lipgloss.Color
}

// Surface is a fixed-size grid of cells. It plays the role of an offscreen
// drawing surface: renderers paint cells into it and the host serializes it
// to a styled string once per frame. Out-of-bounds writes are clipped.
type Surface struct {
	w, h  int
	cells []Cell
}

// NewSurface allocates a cleared surface. Dimensions are clamped to zero.
func NewSurface(w, h int) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := &Surface{w: w, h: h, cells: make([]Cell, w*h)}
	s.Clear()
	return s
}

// Width returns the surface width in cells.
func (s *Surface) Width() int { return s.w }

// Height returns the surface height in cells.
func (s *Surface) Height() int { return s.h }

// Clear resets every cell to a blank space with default colors.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
}

// Set writes one cell. Writes outside the surface are ignored.
func (s *Surface) Set(x, y int, r rune, fg lipgloss.Color) {
	s.SetCell(x, y, Cell{Rune: r, Fg: fg})
}

// SetCell writes one cell with full color control, clipped to the surface.
func (s *Surface) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.cells[y*s.w+x] = c
}

// At returns the cell at (x, y). Out-of-bounds reads return a blank cell.
func (s *Surface) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return Cell{Rune: ' '}
	}
	return s.cells[y*s.w+x]
}

// DrawString writes a run of text starting at (x, y), clipped to the row.
func (s *Surface) DrawString(x, y int, text string, fg lipgloss.Color) {
	for _, r := range text {
		s.Set(x, y, r, fg)
		x++
	}
}

// FillRect paints a rectangle with one rune and foreground color.
func (s *Surface) FillRect(x, y, w, h int, r rune, fg lipgloss.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.Set(xx, yy, r, fg)
		}
	}
}

// Composite copies src onto the surface with its origin at (x, y). This is
// the blit the frame cache uses; it is O(area of src) with no styling work.
func (s *Surface) Composite(src *Surface, x, y int) {
	for sy := 0; sy < src.h; sy++ {
		for sx := 0; sx < src.w; sx++ {
			s.SetCell(x+sx, y+sy, src.cells[sy*src.w+sx])
		}
	}
}

// Text returns the plain runes of the surface without any styling, one line
// per row. Tests assert on this form.
func (s *Surface) Text() string {
	var b strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.w; x++ {
			b.WriteRune(s.cells[y*s.w+x].Rune)
		}
	}
	return b.String()
}

// String serializes the surface to lines of styled text. Consecutive cells
// sharing colors render as one styled run to keep escape-sequence volume
// down.
func (s *Surface) String() string {
	var b strings.Builder

	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}

		runStart := 0
		var run []rune
		flushRun := func(end int) {
			if len(run) == 0 {
				return
			}
			c := s.cells[y*s.w+runStart]
			style := lipgloss.NewStyle()
			if c.Fg != "" {
				style = style.Foreground(c.Fg)
			}
			if c.Bg != "" {
				style = style.Background(c.Bg)
			}
			b.WriteString(style.Render(string(run)))
			run = run[:0]
			runStart = end
		}

		for x := 0; x < s.w; x++ {
			c := s.cells[y*s.w+x]
			prev := s.cells[y*s.w+runStart]
			if len(run) > 0 && (c.Fg != prev.Fg || c.Bg != prev.Bg) {
				flushRun(x)
			}
			if len(run) == 0 {
				runStart = x
			}
			run = append(run, c.Rune)
		}
		flushRun(s.w)
	}

	return b.String()
}
