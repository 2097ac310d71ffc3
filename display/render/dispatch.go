package render

import (
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/panel-pulse/anim"
	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/display/layout"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// Item carries everything the dispatcher needs to draw one content item.
type Item struct {
	// Prefix is the item's slot address, used only for log context.
	Prefix string
	// Style selects and configures the renderer.
	Style ItemStyle
	// Data is the resolved typed view of the item.
	Data telemetry.ContentItemData
	// Percent is the animated fill level in [0, 1]. Callers fall back to
	// Data.Percent() when no animated entry exists yet.
	Percent float64
	// Cores holds animated per-core values for CoreBars items.
	Cores []float64
	// History holds graph samples for Graph items, oldest first.
	History []anim.Sample
	// Slots holds the item's own snapshot fields with the prefix
	// stripped, for overlay templating.
	Slots telemetry.Snapshot
}

// Dispatcher routes items to content renderers. A renderer failure never
// aborts the loop: the failed item falls back to the text renderer and is
// logged, so one bad item cannot blank the whole panel.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. If logger is nil, a no-op logger is
// used.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{logger: logger}
}

// Draw renders one item into its rectangle on the surface. Exactly one
// renderer runs per item; side effects are confined to the surface.
func (d *Dispatcher) Draw(s *Surface, rect layout.Rect, theme color.Theme, item Item) {
	rc := toCells(rect)

	var err error
	switch item.Style.Type {
	case Bar:
		err = renderBar(s, rc, theme, item.Data, item.Percent)
	case Text:
		err = renderText(s, rc, item.Style, theme, item.Data, item.Slots)
	case Graph:
		err = renderGraph(s, rc, item.Style, theme, item.Data, item.History, item.Slots)
	case CoreBars:
		err = renderCoreBars(s, rc, theme, item.Cores)
	case Static:
		err = renderStatic(s, rc, item.Style, theme, item.Data, item.Slots)
	case Arc:
		err = renderArc(s, rc, theme, item.Data, item.Percent)
	case Speedometer:
		err = renderSpeedometer(s, rc, theme, item.Data, item.Percent)
	case LevelBar:
		err = renderLevelBar(s, rc, item.Style, theme, item.Data, item.Percent)
	default:
		err = renderText(s, rc, item.Style, theme, item.Data, item.Slots)
	}

	if err != nil && item.Style.Type != Text {
		d.logger.Warn("render: content renderer failed, falling back to text",
			slog.String("prefix", item.Prefix),
			slog.String("type", item.Style.Type.String()),
			slog.String("error", err.Error()))
		_ = renderText(s, rc, item.Style, theme, item.Data, item.Slots)
	}
}
