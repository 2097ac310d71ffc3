// Package format provides shared string formatting utilities for panel
// rendering.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// Decimal1 formats a float with one decimal place, the display convention
// for all numeric telemetry readings.
func Decimal1(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// TruncateWithEllipsis truncates a string to maxWidth runes, appending "..."
// if the string exceeds the limit. If maxWidth is less than 4, the string
// is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}

	return string(runes[:maxWidth-3]) + "..."
}

// Age renders the time since t as a concise label like "3s", "2m" or "1h",
// or "never" for the zero time. Used in the TUI footer.
func Age(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
