package render

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/panel-pulse/display/layout"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

func TestDispatcher_DrawText(t *testing.T) {
	s := NewSurface(20, 2)
	d := NewDispatcher(nil)
	item := Item{
		Prefix: "group1_1",
		Style:  DefaultItemStyle(),
		Data:   telemetry.ContentItemData{Caption: "CPU", Value: "42.0", Unit: "%"},
	}

	d.Draw(s, layout.Rect{X: 0, Y: 0, W: 20, H: 2}, testTheme, item)

	if !strings.Contains(s.Text(), "CPU") {
		t.Errorf("expected caption drawn, got:\n%s", s.Text())
	}
}

func TestDispatcher_FallsBackToText(t *testing.T) {
	// A graph cannot fit a single row, so the dispatcher must fall back to
	// the text renderer instead of leaving the rectangle blank.
	s := NewSurface(20, 1)
	d := NewDispatcher(nil)
	style := DefaultItemStyle()
	style.Type = Graph
	item := Item{
		Prefix: "group2_1",
		Style:  style,
		Data:   telemetry.ContentItemData{Caption: "Disk", Value: "77.0", Unit: "%"},
	}

	d.Draw(s, layout.Rect{X: 0, Y: 0, W: 20, H: 1}, testTheme, item)

	if !strings.Contains(s.Text(), "Disk") || !strings.Contains(s.Text(), "77.0%") {
		t.Errorf("expected text fallback output, got: %q", s.Text())
	}
}

func TestDispatcher_BarUsesAnimatedPercent(t *testing.T) {
	s := NewSurface(20, 1)
	d := NewDispatcher(nil)
	style := DefaultItemStyle()
	style.Type = Bar
	item := Item{
		Style:   style,
		Data:    telemetry.ContentItemData{MaxValue: 100},
		Percent: 1,
	}

	d.Draw(s, layout.Rect{X: 0, Y: 0, W: 20, H: 1}, testTheme, item)

	if !strings.Contains(s.Text(), "█") {
		t.Errorf("expected filled bar cells at full percent, got %q", s.Text())
	}
	if strings.Contains(s.Text(), "░") {
		t.Errorf("expected no empty track at full percent, got %q", s.Text())
	}
}
