package render

// ContentType tags which renderer draws an item. The set is closed; the
// dispatcher routes each item through a single switch.
type ContentType int

const (
	// Bar draws a horizontal fill bar with caption and value text.
	Bar ContentType = iota
	// Text draws caption, value and unit without a gauge.
	Text
	// Graph draws the item's sample history as a filled chart.
	Graph
	// CoreBars draws one mini column per CPU core.
	CoreBars
	// Static draws a fixed image scaled into the item rectangle.
	Static
	// Arc draws a circular arc gauge.
	Arc
	// Speedometer draws a radial gauge with a needle.
	Speedometer
	// LevelBar draws a segmented level indicator.
	LevelBar
)

// String returns the configuration name of the content type.
func (t ContentType) String() string {
	switch t {
	case Bar:
		return "bar"
	case Text:
		return "text"
	case Graph:
		return "graph"
	case CoreBars:
		return "core_bars"
	case Static:
		return "static"
	case Arc:
		return "arc"
	case Speedometer:
		return "speedometer"
	case LevelBar:
		return "level_bar"
	default:
		return "unknown"
	}
}

// ParseContentType maps a configuration string to a ContentType. Unknown
// values fall back to Text.
func ParseContentType(s string) ContentType {
	switch s {
	case "bar":
		return Bar
	case "graph":
		return Graph
	case "core_bars":
		return CoreBars
	case "static":
		return Static
	case "arc":
		return Arc
	case "speedometer":
		return Speedometer
	case "level_bar":
		return LevelBar
	default:
		return Text
	}
}

// ItemStyle is the per-item style configuration handed to the dispatcher.
type ItemStyle struct {
	// Type selects the renderer.
	Type ContentType

	// FixedSize pins the item's extent along the layout axis when
	// AutoSize is false. Graph items always use their fixed size.
	FixedSize float64
	// AutoSize lets the layout solver flex this item.
	AutoSize bool

	// MaxDataPoints bounds the graph history length.
	MaxDataPoints int

	// StartCore and EndCore select the core range for CoreBars.
	StartCore, EndCore int

	// ImagePath locates the image for Static items.
	ImagePath string

	// Overlay holds text template lines rendered over graph and static
	// content. "{field}" placeholders resolve against the item's slot
	// values.
	Overlay []string

	// Segments is the segment count for LevelBar (default 10).
	Segments int
}

// DefaultItemStyle returns the style used when configuration names no
// style for a prefix.
func DefaultItemStyle() ItemStyle {
	return ItemStyle{
		Type:          Text,
		AutoSize:      true,
		FixedSize:     3,
		MaxDataPoints: 120,
		EndCore:       -1,
		Segments:      10,
	}
}
