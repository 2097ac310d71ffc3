package render

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/panel-pulse/anim"
	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

var testTheme = color.Lookup(color.DefaultTheme)

func TestRenderText_CaptionAndValue(t *testing.T) {
	s := NewSurface(20, 1)
	data := telemetry.ContentItemData{Caption: "CPU", Value: "42.0", Unit: "%"}

	if err := renderText(s, cellRect{x: 0, y: 0, w: 20, h: 1}, DefaultItemStyle(), testTheme, data, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := s.Text()
	if !strings.HasPrefix(line, "CPU") {
		t.Errorf("expected caption on the left, got %q", line)
	}
	if !strings.HasSuffix(line, "42.0%") {
		t.Errorf("expected value and unit right-aligned, got %q", line)
	}
}

func TestRenderText_OverlayLines(t *testing.T) {
	s := NewSurface(20, 3)
	data := telemetry.ContentItemData{Caption: "Clock", Value: "15:04"}
	style := DefaultItemStyle()
	style.Overlay = []string{"{hour}h {minute}m"}
	slots := telemetry.Snapshot{
		"hour":   telemetry.String("15"),
		"minute": telemetry.String("04"),
	}

	if err := renderText(s, cellRect{x: 0, y: 0, w: 20, h: 3}, style, testTheme, data, slots); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(s.Text(), "15h 04m") {
		t.Errorf("expected resolved overlay line, got:\n%s", s.Text())
	}
}

func TestRenderText_RejectsEmptyRect(t *testing.T) {
	s := NewSurface(10, 10)
	if err := renderText(s, cellRect{x: 0, y: 0, w: 0, h: 1}, DefaultItemStyle(), testTheme, telemetry.ContentItemData{}, nil); err == nil {
		t.Error("expected error for zero-width rectangle")
	}
}

func TestResolveOverlay_Placeholders(t *testing.T) {
	data := telemetry.ContentItemData{Caption: "Mem", Value: "3.1", Unit: "GB"}
	slots := telemetry.Snapshot{"free": telemetry.Number(12)}

	cases := []struct {
		line string
		want string
	}{
		{"{caption}: {value}{unit}", "Mem: 3.1GB"},
		{"free {free}", "free 12.0"},
		{"{missing} end", " end"},
		{"no placeholders", "no placeholders"},
		{"unterminated {value", "unterminated {value"},
	}
	for _, c := range cases {
		if got := resolveOverlay(c.line, data, slots); got != c.want {
			t.Errorf("resolveOverlay(%q): expected %q, got %q", c.line, c.want, got)
		}
	}
}

func TestRenderBar_FillProportional(t *testing.T) {
	s := NewSurface(20, 1)
	data := telemetry.ContentItemData{}

	if err := renderBar(s, cellRect{x: 0, y: 0, w: 20, h: 1}, testTheme, data, 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := s.Text()
	filled := strings.Count(line, "█")
	track := strings.Count(line, "░")
	if filled == 0 || track == 0 {
		t.Fatalf("expected both filled and empty track cells, got %q", line)
	}
	if filled+track > 20 {
		t.Errorf("bar wider than rectangle: %d cells", filled+track)
	}
}

func TestRenderBar_TooNarrow(t *testing.T) {
	s := NewSurface(10, 10)
	if err := renderBar(s, cellRect{x: 0, y: 0, w: 3, h: 1}, testTheme, telemetry.ContentItemData{}, 0.5); err == nil {
		t.Error("expected error for rectangle below the bar minimum")
	}
}

func TestRenderLevelBar_SegmentCount(t *testing.T) {
	s := NewSurface(30, 1)
	style := DefaultItemStyle()
	style.Segments = 5

	if err := renderLevelBar(s, cellRect{x: 0, y: 0, w: 30, h: 1}, style, testTheme, telemetry.ContentItemData{}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Count(s.Text(), "▮"); got != 5 {
		t.Errorf("expected 5 segments, got %d in %q", got, s.Text())
	}
}

func TestRenderGraph_ColumnsAndMinimum(t *testing.T) {
	s := NewSurface(10, 4)
	data := telemetry.ContentItemData{MinValue: 0, MaxValue: 100}
	history := []anim.Sample{{Value: 0}, {Value: 50}, {Value: 100}}

	if err := renderGraph(s, cellRect{x: 0, y: 0, w: 10, h: 4}, DefaultItemStyle(), testTheme, data, history, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s.Text(), "█") {
		t.Errorf("expected full blocks for the 100%% column, got:\n%s", s.Text())
	}

	if err := renderGraph(s, cellRect{x: 0, y: 0, w: 1, h: 4}, DefaultItemStyle(), testTheme, data, history, nil); err == nil {
		t.Error("expected error below the graph minimum size")
	}
}

func TestRenderGraph_AutoScale(t *testing.T) {
	s := NewSurface(6, 3)
	// Degenerate limits force scaling from the visible window.
	data := telemetry.ContentItemData{MinValue: 0, MaxValue: 0}
	history := []anim.Sample{{Value: 10}, {Value: 20}, {Value: 30}}

	if err := renderGraph(s, cellRect{x: 0, y: 0, w: 6, h: 3}, DefaultItemStyle(), testTheme, data, history, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s.Text(), "█") {
		t.Errorf("expected the window maximum to reach full height, got:\n%s", s.Text())
	}
}

func TestRenderCoreBars_OneColumnPerCore(t *testing.T) {
	s := NewSurface(8, 2)
	cores := []float64{0, 0.5, 1}

	if err := renderCoreBars(s, cellRect{x: 0, y: 0, w: 8, h: 2}, testTheme, cores); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.ContainsAny(s.Text(), "▁▂▃▄▅▆▇█") {
		t.Errorf("expected block columns, got:\n%s", s.Text())
	}

	if err := renderCoreBars(s, cellRect{x: 0, y: 0, w: 8, h: 2}, testTheme, nil); err != nil {
		t.Errorf("expected empty core list to be a no-op, got %v", err)
	}
}

func TestContentType_ParseRoundTrip(t *testing.T) {
	for _, ct := range []ContentType{Bar, Text, Graph, CoreBars, Static, Arc, Speedometer, LevelBar} {
		if got := ParseContentType(ct.String()); got != ct {
			t.Errorf("%v does not round-trip: got %v", ct, got)
		}
	}
	if got := ParseContentType("hologram"); got != Text {
		t.Errorf("expected unknown type to fall back to text, got %v", got)
	}
}
