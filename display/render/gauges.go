package render

import (
	"math"

	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/internal/format"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// Terminal cells are roughly twice as tall as wide; gauge geometry scales
// x by this factor so rings look circular.
const cellAspect = 2.0

// renderArc draws a three-quarter ring gauge. The ring opens at the bottom
// and fills clockwise from the lower left; value text sits in the center.
func renderArc(s *Surface, rc cellRect, theme color.Theme, data telemetry.ContentItemData, percent float64) error {
	if rc.w < 7 || rc.h < 4 {
		return ErrRectTooSmall
	}

	cx := float64(rc.x) + float64(rc.w)/2
	cy := float64(rc.y) + float64(rc.h)/2
	radius := math.Min(float64(rc.w)/(2*cellAspect), float64(rc.h)/2) - 0.5
	if radius < 1 {
		return ErrRectTooSmall
	}

	// Sweep 270 degrees clockwise starting at the lower left, leaving the
	// bottom quarter open.
	const startAngle = 3.0 * math.Pi / 4.0
	const sweep = 3.0 * math.Pi / 2.0

	steps := int(sweep * radius * cellAspect)
	if steps < 16 {
		steps = 16
	}
	fg := fillColor(percent, theme)

	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		angle := startAngle + frac*sweep
		x := int(math.Round(cx + math.Cos(angle)*radius*cellAspect))
		y := int(math.Round(cy + math.Sin(angle)*radius))

		if frac <= percent {
			s.Set(x, y, '●', fg)
		} else {
			s.Set(x, y, '·', theme.Dim)
		}
	}

	value := data.Value + data.Unit
	s.DrawString(rc.x+(rc.w-len([]rune(value)))/2, int(cy), value, theme.Text)
	if rc.h >= 5 && data.Caption != "" {
		caption := format.TruncateWithEllipsis(data.Caption, rc.w)
		s.DrawString(rc.x+(rc.w-len([]rune(caption)))/2, rc.y+rc.h-1, caption, theme.Accent)
	}

	return nil
}

// renderSpeedometer draws a semicircular dial with tick marks and a needle
// from the hub to the current reading.
func renderSpeedometer(s *Surface, rc cellRect, theme color.Theme, data telemetry.ContentItemData, percent float64) error {
	if rc.w < 9 || rc.h < 4 {
		return ErrRectTooSmall
	}

	cx := float64(rc.x) + float64(rc.w)/2
	cy := float64(rc.y+rc.h) - 1.5
	radius := math.Min(float64(rc.w)/(2*cellAspect), float64(rc.h)-1.5) - 0.5
	if radius < 1.5 {
		return ErrRectTooSmall
	}

	// Dial spans 180 degrees, left horizon to right horizon.
	ticks := int(radius * cellAspect * math.Pi)
	if ticks < 12 {
		ticks = 12
	}
	for i := 0; i <= ticks; i++ {
		frac := float64(i) / float64(ticks)
		angle := math.Pi + frac*math.Pi
		x := int(math.Round(cx + math.Cos(angle)*radius*cellAspect))
		y := int(math.Round(cy + math.Sin(angle)*radius))

		r := '·'
		if i%(ticks/6+1) == 0 {
			r = '+'
		}
		fg := theme.Dim
		if frac <= percent {
			fg = fillColor(frac, theme)
		}
		s.Set(x, y, r, fg)
	}

	// Needle from hub toward the current reading.
	needleAngle := math.Pi + percent*math.Pi
	needleLen := radius - 0.5
	segs := int(needleLen * cellAspect)
	for i := 1; i <= segs; i++ {
		frac := float64(i) / float64(segs)
		x := int(math.Round(cx + math.Cos(needleAngle)*needleLen*frac*cellAspect))
		y := int(math.Round(cy + math.Sin(needleAngle)*needleLen*frac))
		s.Set(x, y, '▰', theme.Accent)
	}
	s.Set(int(cx), int(cy), '◉', theme.Accent)

	value := data.Value + data.Unit
	s.DrawString(rc.x+(rc.w-len([]rune(value)))/2, rc.y+rc.h-1, value, theme.Text)

	return nil
}
