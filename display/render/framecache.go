package render

import (
	"log/slog"

	"gitlab.com/tinyland/lab/panel-pulse/display/layout"
)

// FrameFn paints the decorative frame onto a surface and reports the inner
// content bounds plus per-group layout rectangles. It runs only when the
// cache misses.
type FrameFn func(s *Surface, w, h int) (contentBounds layout.Rect, groupLayouts []layout.Rect, err error)

// FrameCache memoizes the rendered frame surface of one panel. An entry is
// valid while the pixel size and configuration version both match; any
// mismatch destroys and rebuilds it. The cache never inspects configuration
// contents, only the version counter.
type FrameCache struct {
	surface       *Surface
	width, height int
	configVersion uint64
	contentBounds layout.Rect
	groupLayouts  []layout.Rect
	valid         bool

	logger *slog.Logger
}

// NewFrameCache creates an empty cache.
func NewFrameCache(logger *slog.Logger) *FrameCache {
	return &FrameCache{logger: logger}
}

// Render composites the frame for the given size and configuration version
// onto dst. On a hit this is a single blit; on a miss it allocates a fresh
// offscreen surface, invokes renderFrame exactly once, stores the entry and
// then composites. If renderFrame fails on the offscreen surface, the frame
// is drawn directly onto dst instead, uncached, so the draw still succeeds.
func (c *FrameCache) Render(dst *Surface, w, h int, configVersion uint64, renderFrame FrameFn) (layout.Rect, []layout.Rect, error) {
	if c.valid && c.width == w && c.height == h && c.configVersion == configVersion {
		dst.Composite(c.surface, 0, 0)
		return c.contentBounds, c.groupLayouts, nil
	}

	off := NewSurface(w, h)
	bounds, groups, err := renderFrame(off, w, h)
	if err != nil {
		// Degraded path: draw straight onto the live target every frame.
		c.valid = false
		if c.logger != nil {
			c.logger.Debug("framecache: offscreen render failed, drawing direct",
				slog.String("error", err.Error()))
		}
		return renderFrame(dst, w, h)
	}

	c.surface = off
	c.width = w
	c.height = h
	c.configVersion = configVersion
	c.contentBounds = bounds
	c.groupLayouts = groups
	c.valid = true

	dst.Composite(off, 0, 0)
	return bounds, groups, nil
}

// Cached returns the cached surface when its pixel size matches, for the
// stale-frame reuse path during lock contention. The configuration version
// is deliberately not checked there; a slightly stale frame beats a blank
// one.
func (c *FrameCache) Cached(w, h int) (*Surface, bool) {
	if !c.valid || c.width != w || c.height != h {
		return nil, false
	}
	return c.surface, true
}

// Invalidate drops the cached entry.
func (c *FrameCache) Invalidate() {
	c.valid = false
	c.surface = nil
}
