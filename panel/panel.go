// Package panel coordinates one dashboard panel: it binds incoming
// telemetry snapshots to animated per-item state, lays items out, and
// paints them through the render dispatch, all behind a single mutex.
//
// Two activities share that mutex. The update path (telemetry delivery)
// takes a blocking lock but keeps its critical section short. The render
// and tick paths run on the UI loop and only ever try-lock: on contention
// they reuse the last cached frame or paint a fallback background instead
// of blocking the frame.
package panel

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/panel-pulse/anim"
	"gitlab.com/tinyland/lab/panel-pulse/config"
	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/display/layout"
	"gitlab.com/tinyland/lab/panel-pulse/display/render"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// autoDetectCoreLimit bounds the per-core key probe when no core range is
// configured.
const autoDetectCoreLimit = 128

// fallbackDim is the background painted when the render path loses the lock
// race and has no cached frame to reuse.
var fallbackDim = lipgloss.Color("240")

// Panel owns the full state of one dashboard panel. All fields behind mu
// are owned exclusively by this panel; telemetry producers mutate animation
// targets only through ApplyUpdate.
type Panel struct {
	mu sync.Mutex

	cfg     config.PanelConfig
	styles  map[string]render.ItemStyle
	theme   color.Theme
	version uint64

	prefixes  []string
	prefixSet map[string]struct{}

	values telemetry.Snapshot
	state  *anim.State
	cache  *render.FrameCache

	dirty    bool
	lastTick time.Time
	start    time.Time

	dispatch *render.Dispatcher
	keys     *telemetry.KeyBuilder
	logger   *slog.Logger
}

// New creates a panel from its configuration. If logger is nil, a no-op
// logger is used.
func New(cfg config.PanelConfig, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Panel{
		values:   make(telemetry.Snapshot),
		state:    anim.NewState(),
		cache:    render.NewFrameCache(logger),
		dispatch: render.NewDispatcher(logger),
		keys:     telemetry.NewKeyBuilder(),
		logger:   logger,
		dirty:    true,
		start:    time.Now(),
		lastTick: time.Now(),
	}
	p.applyConfigLocked(cfg)
	return p
}

// Title returns the panel's display name.
func (p *Panel) Title() string { return p.cfg.Title }

// Source returns the name of the telemetry source feeding this panel.
func (p *Panel) Source() string { return p.cfg.Source }

// SetConfig replaces the panel configuration. The configuration version is
// bumped so the frame cache invalidates, and the prefix set regenerates
// when the group descriptor changed, followed by a stale-key sweep.
func (p *Panel) SetConfig(cfg config.PanelConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyConfigLocked(cfg)
}

func (p *Panel) applyConfigLocked(cfg config.PanelConfig) {
	countsChanged := !equalCounts(p.cfg.GroupItemCounts, cfg.GroupItemCounts)

	p.cfg = cfg
	p.theme = color.Lookup(cfg.Theme)
	p.styles = itemStyles(cfg)
	p.version++

	if countsChanged || p.prefixes == nil {
		p.prefixes = telemetry.GeneratePrefixes(cfg.GroupItemCounts)
		p.prefixSet = telemetry.PrefixSet(p.prefixes)
		p.state.Cleanup(p.prefixSet)
	}
	p.dirty = true
}

func equalCounts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// itemStyles resolves the per-prefix style map from configuration.
func itemStyles(cfg config.PanelConfig) map[string]render.ItemStyle {
	styles := make(map[string]render.ItemStyle, len(cfg.Items))
	for prefix, item := range cfg.Items {
		s := render.DefaultItemStyle()
		s.Type = render.ParseContentType(item.Type)
		if item.FixedSize > 0 {
			s.FixedSize = item.FixedSize
		}
		s.AutoSize = item.AutoSize
		if item.MaxDataPoints > 0 {
			s.MaxDataPoints = item.MaxDataPoints
		}
		s.StartCore = item.StartCore
		if item.EndCore != 0 {
			s.EndCore = item.EndCore
		}
		s.ImagePath = item.Image
		s.Overlay = item.Overlay
		if item.Segments > 0 {
			s.Segments = item.Segments
		}
		styles[prefix] = s
	}
	return styles
}

func (p *Panel) styleFor(prefix string) render.ItemStyle {
	if s, ok := p.styles[prefix]; ok {
		return s
	}
	return render.DefaultItemStyle()
}

// ApplyUpdate binds one telemetry snapshot into the panel: filter the raw
// snapshot down to known addresses, refresh animation targets and graph
// history per item, sweep stale keys, and flag the panel dirty. All per-item
// updates land inside one critical section, so a concurrent render sees
// either the prior snapshot or this one, never a partial mix.
func (p *Panel) ApplyUpdate(raw telemetry.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	telemetry.FilterInto(raw, p.prefixSet, p.values)

	timestamp := time.Since(p.start).Seconds()
	animate := p.cfg.Animation.Enabled

	for _, prefix := range p.prefixes {
		data := telemetry.ItemData(p.values, prefix)
		p.state.SetBarTarget(prefix, data.Percent(), animate)

		style := p.styleFor(prefix)
		switch style.Type {
		case render.Graph:
			p.state.AppendSample(prefix, data.NumericalValue, timestamp, style.MaxDataPoints)
		case render.CoreBars:
			p.state.SetCoreTargets(prefix, p.coreTargets(prefix, style), animate)
		}
	}

	p.state.Cleanup(p.prefixSet)
	p.dirty = true
}

// coreTargets reads the per-core usage fields for one prefix, normalized to
// [0, 1]. The configured core range is tried first; when it yields nothing,
// cores are probed from zero until the first missing key.
func (p *Panel) coreTargets(prefix string, style render.ItemStyle) []float64 {
	var targets []float64

	if style.EndCore >= style.StartCore {
		for core := style.StartCore; core <= style.EndCore; core++ {
			v, ok := p.values[string(p.keys.CoreKey(prefix, core))]
			if !ok {
				continue
			}
			if f, ok := v.AsFloat(); ok {
				targets = append(targets, f/100)
			}
		}
	}

	if len(targets) == 0 {
		for core := 0; core < autoDetectCoreLimit; core++ {
			v, ok := p.values[string(p.keys.CoreKey(prefix, core))]
			if !ok {
				break
			}
			if f, ok := v.AsFloat(); ok {
				targets = append(targets, f/100)
			}
		}
	}

	return targets
}

// Tick advances animation by the elapsed wall time and reports whether a
// redraw is needed. It never blocks: under contention with an update it
// skips this frame's animation step and reports false.
func (p *Panel) Tick(now time.Time) bool {
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()

	redraw := p.dirty
	p.dirty = false

	if p.cfg.Animation.Enabled && p.state.Animating() {
		elapsed := now.Sub(p.lastTick).Seconds()
		p.lastTick = now
		if p.state.Step(p.cfg.Animation.Speed, elapsed) {
			redraw = true
		}
	} else {
		p.lastTick = now
	}

	return redraw
}

// NeedsRedraw reports whether unrendered state changes exist, without
// consuming the dirty flag. Under contention it reports true so the host
// schedules another look.
func (p *Panel) NeedsRedraw() bool {
	if !p.mu.TryLock() {
		return true
	}
	defer p.mu.Unlock()
	return p.dirty
}

// Render paints the panel at the given cell size and returns the styled
// frame. The UI thread is never blocked: if the state lock is contended the
// most recent cached frame is reused when its size matches, else a solid
// fallback background is painted.
func (p *Panel) Render(w, h int) string {
	if w < 4 || h < 3 {
		return ""
	}

	if !p.mu.TryLock() {
		if cached, ok := p.cache.Cached(w, h); ok {
			return cached.String()
		}
		// Neutral background; the theme is not read here since the lock
		// holder may be swapping it.
		fallback := render.NewSurface(w, h)
		fallback.FillRect(0, 0, w, h, '░', fallbackDim)
		return fallback.String()
	}
	defer p.mu.Unlock()

	surface := render.NewSurface(w, h)

	_, groupRects, err := p.cache.Render(surface, w, h, p.version, p.renderFrame)
	if err != nil {
		p.logger.Warn("panel: frame render failed", slog.String("panel", p.cfg.Title), slog.String("error", err.Error()))
		return surface.String()
	}

	prefixIdx := 0
	for g, count := range p.cfg.GroupItemCounts {
		if g >= len(groupRects) {
			break
		}
		p.renderGroup(surface, groupRects[g], g, p.prefixes[prefixIdx:prefixIdx+count])
		prefixIdx += count
	}

	return surface.String()
}

// renderGroup lays out and dispatches the items of one group.
func (p *Panel) renderGroup(surface *render.Surface, bounds layout.Rect, group int, prefixes []string) {
	orientation := layout.ParseOrientation(p.cfg.Orientation)
	if group < len(p.cfg.GroupOrientations) {
		orientation = layout.ParseOrientation(p.cfg.GroupOrientations[group])
	}

	fixed := make(map[int]float64)
	for i, prefix := range prefixes {
		style := p.styleFor(prefix)
		if !style.AutoSize || style.Type == render.Graph {
			fixed[i] = style.FixedSize
		}
	}

	rects := layout.Solve(bounds.X, bounds.Y, bounds.W, bounds.H,
		len(prefixes), p.cfg.Spacing, fixed, orientation)

	for i, rect := range rects {
		if i >= len(prefixes) {
			break
		}
		prefix := prefixes[i]
		style := p.styleFor(prefix)
		data := telemetry.ItemData(p.values, prefix)

		percent, ok := p.state.BarPercent(prefix)
		if !ok {
			percent = data.Percent()
		}

		item := render.Item{
			Prefix:  prefix,
			Style:   style,
			Data:    data,
			Percent: percent,
			Slots:   telemetry.SlotValues(p.values, prefix),
		}
		switch style.Type {
		case render.Graph:
			item.History = p.state.History(prefix)
		case render.CoreBars:
			item.Cores = p.state.CorePercents(prefix)
		}

		p.dispatch.Draw(surface, rect, p.theme, item)
	}
}

// renderFrame paints the decorative chrome: the border with the title in
// the top edge, and the divider lines between groups. It reports the inner
// content bounds and each group's rectangle; layout inside a group happens
// per render, but the group split only changes with configuration.
func (p *Panel) renderFrame(s *render.Surface, w, h int) (layout.Rect, []layout.Rect, error) {
	drawBorder(s, w, h, p.cfg.Title, p.theme)

	content := layout.Rect{X: 1, Y: 1, W: float64(w - 2), H: float64(h - 2)}
	groups := p.groupLayouts(content)

	// Divider row under each group except the last.
	for i := 0; i < len(groups)-1; i++ {
		y := int(math.Round(groups[i].Y + groups[i].H))
		for x := 1; x < w-1; x++ {
			s.Set(x, y, '─', p.theme.Frame)
		}
		s.Set(0, y, '├', p.theme.Frame)
		s.Set(w-1, y, '┤', p.theme.Frame)
	}

	return content, groups, nil
}

// groupLayouts splits the content bounds among groups, proportionally to
// their item counts, stacked vertically with one divider row between
// groups.
func (p *Panel) groupLayouts(content layout.Rect) []layout.Rect {
	counts := p.cfg.GroupItemCounts
	if len(counts) <= 1 {
		return []layout.Rect{content}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return []layout.Rect{content}
	}

	dividers := float64(len(counts) - 1)
	usable := content.H - dividers
	if usable < 0 {
		usable = 0
	}

	rects := make([]layout.Rect, 0, len(counts))
	y := content.Y
	for _, c := range counts {
		gh := math.Floor(usable * float64(c) / float64(total))
		rects = append(rects, layout.Rect{X: content.X, Y: y, W: content.W, H: gh})
		y += gh + 1
	}
	// Give any rounding remainder to the last group.
	last := &rects[len(rects)-1]
	last.H = content.Y + content.H - last.Y
	if last.H < 0 {
		last.H = 0
	}

	return rects
}

// drawBorder paints a rounded box with the title embedded in the top edge.
func drawBorder(s *render.Surface, w, h int, title string, theme color.Theme) {
	for x := 1; x < w-1; x++ {
		s.Set(x, 0, '─', theme.Frame)
		s.Set(x, h-1, '─', theme.Frame)
	}
	for y := 1; y < h-1; y++ {
		s.Set(0, y, '│', theme.Frame)
		s.Set(w-1, y, '│', theme.Frame)
	}
	s.Set(0, 0, '╭', theme.Frame)
	s.Set(w-1, 0, '╮', theme.Frame)
	s.Set(0, h-1, '╰', theme.Frame)
	s.Set(w-1, h-1, '╯', theme.Frame)

	if title != "" && w > 6 {
		label := " " + title + " "
		if len(label) > w-4 {
			label = label[:w-4]
		}
		s.DrawString(2, 0, label, theme.Accent)
	}
}
