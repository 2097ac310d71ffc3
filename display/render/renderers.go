package render

import (
	"errors"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/panel-pulse/anim"
	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/display/layout"
	"gitlab.com/tinyland/lab/panel-pulse/internal/format"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// ErrRectTooSmall is returned when an item rectangle cannot hold the
// renderer's minimum geometry. The dispatcher falls back to the text
// renderer in that case.
var ErrRectTooSmall = errors.New("render: rectangle too small")

// sparkBlocks are the eight block characters used for graph and core-bar
// columns, lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// cellRect converts a float rectangle from the layout solver into integer
// cell bounds.
type cellRect struct {
	x, y, w, h int
}

func toCells(r layout.Rect) cellRect {
	x := int(math.Round(r.X))
	y := int(math.Round(r.Y))
	return cellRect{
		x: x,
		y: y,
		w: int(math.Round(r.X+r.W)) - x,
		h: int(math.Round(r.Y+r.H)) - y,
	}
}

// fillColor picks the threshold color for a fill level, mirroring the
// warn-at-70 danger-at-90 convention of the horizontal gauges.
func fillColor(percent float64, theme color.Theme) lipgloss.Color {
	switch {
	case percent >= 0.9:
		return theme.Danger
	case percent >= 0.7:
		return theme.Warn
	default:
		return theme.Fill
	}
}

// resolveOverlay substitutes "{field}" placeholders in one overlay line.
// Caption, value and unit resolve from the item data; any other field
// resolves from the slot values and unknown fields render empty.
func resolveOverlay(line string, data telemetry.ContentItemData, slots telemetry.Snapshot) string {
	var b strings.Builder
	rest := line

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:open])
		field := rest[open+1 : open+closing]
		rest = rest[open+closing+1:]

		switch field {
		case "caption":
			b.WriteString(data.Caption)
		case "value":
			b.WriteString(data.Value)
		case "unit":
			b.WriteString(data.Unit)
		default:
			if v, ok := slots[field]; ok {
				if s, ok := v.AsString(); ok {
					b.WriteString(s)
				}
			}
		}
	}

	return b.String()
}

// renderText draws caption on the left and value+unit on the right of the
// first row, with any overlay lines below. It is also the dispatcher's
// fallback for failed renderers, so it must accept any rectangle with at
// least one cell.
func renderText(s *Surface, rc cellRect, style ItemStyle, theme color.Theme, data telemetry.ContentItemData, slots telemetry.Snapshot) error {
	if rc.w < 1 || rc.h < 1 {
		return ErrRectTooSmall
	}

	value := data.Value
	if data.Unit != "" {
		value += data.Unit
	}

	captionWidth := rc.w - len([]rune(value))
	if captionWidth < 0 {
		captionWidth = 0
	}
	caption := format.TruncateWithEllipsis(data.Caption, captionWidth)

	s.DrawString(rc.x, rc.y, caption, theme.Accent)
	s.DrawString(rc.x+rc.w-len([]rune(value)), rc.y, value, theme.Text)

	for i, line := range style.Overlay {
		if i+1 >= rc.h {
			break
		}
		resolved := format.TruncateWithEllipsis(resolveOverlay(line, data, slots), rc.w)
		s.DrawString(rc.x, rc.y+1+i, resolved, theme.Dim)
	}

	return nil
}

// renderBar draws a caption row (when there is room) and a horizontal fill
// bar with the value on the right.
func renderBar(s *Surface, rc cellRect, theme color.Theme, data telemetry.ContentItemData, percent float64) error {
	if rc.w < 4 || rc.h < 1 {
		return ErrRectTooSmall
	}

	barRow := rc.y
	if rc.h >= 2 {
		s.DrawString(rc.x, rc.y, format.TruncateWithEllipsis(data.Caption, rc.w), theme.Accent)
		barRow = rc.y + 1
	}

	value := data.Value + data.Unit
	valueWidth := len([]rune(value)) + 1
	barWidth := rc.w - valueWidth
	if barWidth < 1 {
		barWidth = rc.w
		value = ""
	}

	filled := int(math.Round(percent * float64(barWidth)))
	if filled > barWidth {
		filled = barWidth
	}

	fg := fillColor(percent, theme)
	for x := 0; x < barWidth; x++ {
		r := '░'
		c := theme.Dim
		if x < filled {
			r = '█'
			c = fg
		}
		s.Set(rc.x+x, barRow, r, c)
	}
	if value != "" {
		s.DrawString(rc.x+barWidth+1, barRow, value, theme.Text)
	}

	return nil
}

// renderLevelBar draws a segmented level indicator: discrete blocks with a
// gap between them, filled left to right.
func renderLevelBar(s *Surface, rc cellRect, style ItemStyle, theme color.Theme, data telemetry.ContentItemData, percent float64) error {
	segments := style.Segments
	if segments <= 0 {
		segments = 10
	}
	if rc.w < segments*2-1 || rc.h < 1 {
		return ErrRectTooSmall
	}

	row := rc.y
	if rc.h >= 2 {
		s.DrawString(rc.x, rc.y, format.TruncateWithEllipsis(data.Caption, rc.w), theme.Accent)
		row = rc.y + 1
	}

	lit := int(math.Round(percent * float64(segments)))
	fg := fillColor(percent, theme)
	for i := 0; i < segments; i++ {
		r := '▮'
		c := theme.Dim
		if i < lit {
			c = fg
		}
		s.Set(rc.x+i*2, row, r, c)
	}

	return nil
}

// renderGraph draws the sample history as block columns scaled between the
// item's limits, newest sample on the right, with overlay text on top.
func renderGraph(s *Surface, rc cellRect, style ItemStyle, theme color.Theme, data telemetry.ContentItemData, history []anim.Sample, slots telemetry.Snapshot) error {
	if rc.w < 2 || rc.h < 2 {
		return ErrRectTooSmall
	}

	lo, hi := data.MinValue, data.MaxValue
	if hi <= lo {
		// Auto-scale from the visible window.
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, smp := range history {
			lo = math.Min(lo, smp.Value)
			hi = math.Max(hi, smp.Value)
		}
		if hi <= lo {
			lo, hi = 0, 1
		}
	}

	visible := history
	if len(visible) > rc.w {
		visible = visible[len(visible)-rc.w:]
	}

	// Columns fill bottom-up: full blocks below the surface row, then one
	// partial block from the eighths ramp.
	for i, smp := range visible {
		norm := (smp.Value - lo) / (hi - lo)
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}

		eighths := int(math.Round(norm * float64(rc.h*8)))
		x := rc.x + rc.w - len(visible) + i
		for row := 0; row < rc.h; row++ {
			y := rc.y + rc.h - 1 - row
			switch {
			case eighths >= (row+1)*8:
				s.Set(x, y, '█', theme.Fill)
			case eighths > row*8:
				s.Set(x, y, sparkBlocks[eighths-row*8-1], theme.Fill)
			}
		}
	}

	for i, line := range style.Overlay {
		if i >= rc.h {
			break
		}
		resolved := format.TruncateWithEllipsis(resolveOverlay(line, data, slots), rc.w)
		s.DrawString(rc.x, rc.y+i, resolved, theme.Text)
	}

	return nil
}

// renderCoreBars draws one mini column per core, spread across the
// rectangle width.
func renderCoreBars(s *Surface, rc cellRect, theme color.Theme, cores []float64) error {
	if rc.w < 1 || rc.h < 1 {
		return ErrRectTooSmall
	}
	if len(cores) == 0 {
		return nil
	}

	step := 1
	if len(cores) < rc.w {
		step = rc.w / len(cores)
	}

	for i, pct := range cores {
		x := rc.x + i*step
		if x >= rc.x+rc.w {
			break
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 1 {
			pct = 1
		}

		fg := fillColor(pct, theme)
		eighths := int(math.Round(pct * float64(rc.h*8)))
		for row := 0; row < rc.h; row++ {
			y := rc.y + rc.h - 1 - row
			switch {
			case eighths >= (row+1)*8:
				s.Set(x, y, '█', fg)
			case eighths > row*8:
				s.Set(x, y, sparkBlocks[eighths-row*8-1], fg)
			default:
				s.Set(x, y, '▁', theme.Dim)
			}
		}
	}

	return nil
}
