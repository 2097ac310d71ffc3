// Package layout places a panel's content items into rectangles along one
// axis under mixed fixed/flex sizing. Fixed sizes claim their space first;
// the remainder, minus inter-item spacing, is divided evenly among the flex
// items.
package layout

// Orientation selects the axis items are stacked along.
type Orientation int

const (
	// Vertical stacks items top to bottom.
	Vertical Orientation = iota
	// Horizontal places items left to right.
	Horizontal
)

// String returns the configuration name of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation maps a configuration string to an Orientation. Unknown
// values fall back to Vertical.
func ParseOrientation(s string) Orientation {
	if s == "horizontal" {
		return Horizontal
	}
	return Vertical
}

// Rect is an axis-aligned rectangle in drawing coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Solve lays out count items within the given bounds. Indices present in
// fixedSizes take exactly that extent along the orientation axis; the rest
// share the remaining length evenly. Each item spans the full cross
// dimension. Items whose computed extent is not positive are skipped, and
// an extent is clamped to the space actually left so floating-point
// overshoot never produces a rectangle past the bounds.
func Solve(x, y, w, h float64, count int, spacing float64, fixedSizes map[int]float64, orientation Orientation) []Rect {
	if count == 0 {
		return nil
	}

	axisLen := h
	if orientation == Horizontal {
		axisLen = w
	}

	fixedTotal := 0.0
	flexCount := 0
	for i := 0; i < count; i++ {
		if size, ok := fixedSizes[i]; ok {
			fixedTotal += size
		} else {
			flexCount++
		}
	}

	totalSpacing := float64(count-1) * spacing
	flexTotal := axisLen - fixedTotal - totalSpacing
	if flexTotal < 0 {
		flexTotal = 0
	}
	flexSize := 0.0
	if flexCount > 0 {
		flexSize = flexTotal / float64(flexCount)
	}

	rects := make([]Rect, 0, count)
	pos := 0.0

	for i := 0; i < count; i++ {
		size, ok := fixedSizes[i]
		if !ok {
			size = flexSize
		}
		if remaining := axisLen - pos; size > remaining {
			size = remaining
		}
		if size <= 0 {
			continue
		}

		if orientation == Horizontal {
			rects = append(rects, Rect{X: x + pos, Y: y, W: size, H: h})
		} else {
			rects = append(rects, Rect{X: x, Y: y + pos, W: w, H: size})
		}
		pos += size + spacing
	}

	return rects
}
