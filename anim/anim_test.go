package anim

import (
	"math"
	"testing"
)

func livePrefixes(prefixes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		set[p] = struct{}{}
	}
	return set
}

func TestState_FirstUpdateSnaps(t *testing.T) {
	s := NewState()

	s.SetBarTarget("group1_1", 0.42, true)

	got, ok := s.BarPercent("group1_1")
	if !ok {
		t.Fatal("expected animated entry after first target")
	}
	if got != 0.42 {
		t.Errorf("expected first update to snap current to 0.42, got %v", got)
	}
	if s.Animating() {
		t.Error("expected no animation pending after first-update snap")
	}
}

func TestState_SecondUpdateAnimates(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0.2, true)
	s.SetBarTarget("group1_1", 0.8, true)

	got, _ := s.BarPercent("group1_1")
	if got != 0.2 {
		t.Errorf("expected current to stay at 0.2 until stepped, got %v", got)
	}
	if !s.Animating() {
		t.Error("expected animation pending after target change")
	}

	if !s.Step(4, 0.016) {
		t.Error("expected step to report movement")
	}
	got, _ = s.BarPercent("group1_1")
	if got <= 0.2 || got >= 0.8 {
		t.Errorf("expected current strictly between 0.2 and 0.8, got %v", got)
	}
}

func TestState_AnimationDisabledSnaps(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0.2, false)
	s.SetBarTarget("group1_1", 0.9, false)

	got, _ := s.BarPercent("group1_1")
	if got != 0.9 {
		t.Errorf("expected disabled animation to snap to 0.9, got %v", got)
	}
}

func TestState_TargetHysteresis(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0.5, true)

	// Within 0.5% of the standing target: must not retarget.
	s.SetBarTarget("group1_1", 0.503, true)
	if s.Animating() {
		t.Error("expected jitter below threshold to leave the value settled")
	}

	// Beyond the threshold: retargets.
	s.SetBarTarget("group1_1", 0.51, true)
	if !s.Animating() {
		t.Error("expected change above threshold to start animating")
	}
}

func TestState_StepConverges(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0, true)
	s.SetBarTarget("group1_1", 1, true)

	for i := 0; i < 1000; i++ {
		if !s.Animating() {
			break
		}
		s.Step(4, 0.016)
	}

	got, _ := s.BarPercent("group1_1")
	if got != 1 {
		t.Errorf("expected current to snap exactly onto target 1, got %v", got)
	}
	if s.Animating() {
		t.Error("expected animation finished after convergence")
	}
	if s.Step(4, 0.016) {
		t.Error("expected settled state to be a fixed point of stepping")
	}
}

func TestState_StepMonotoneApproach(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0, true)
	s.SetBarTarget("group1_1", 0.75, true)

	prev := math.Inf(1)
	for i := 0; i < 50; i++ {
		s.Step(4, 0.016)
		cur, _ := s.BarPercent("group1_1")
		dist := math.Abs(0.75 - cur)
		if dist > prev {
			t.Fatalf("step %d moved away from target: distance %v after %v", i, dist, prev)
		}
		prev = dist
	}
}

func TestState_CoreVectorResize(t *testing.T) {
	s := NewState()

	s.SetCoreTargets("group1_2", []float64{0.1, 0.2, 0.3, 0.4}, true)
	if got := s.CorePercents("group1_2"); len(got) != 4 {
		t.Fatalf("expected 4 cores, got %d", len(got))
	}

	// Shrink: extra entries truncate.
	s.SetCoreTargets("group1_2", []float64{0.5, 0.6}, true)
	got := s.CorePercents("group1_2")
	if len(got) != 2 {
		t.Fatalf("expected vector truncated to 2 cores, got %d", len(got))
	}

	// Grow: new cores snap on their first observation.
	s.SetCoreTargets("group1_2", []float64{0.5, 0.6, 0.7}, true)
	got = s.CorePercents("group1_2")
	if len(got) != 3 {
		t.Fatalf("expected vector grown to 3 cores, got %d", len(got))
	}
	if got[2] != 0.7 {
		t.Errorf("expected fresh core to snap to 0.7, got %v", got[2])
	}
}

func TestState_GraphHistoryBounded(t *testing.T) {
	s := NewState()

	for i := 0; i < 10; i++ {
		s.AppendSample("group2_1", float64(i), float64(i), 4)
	}

	hist := s.History("group2_1")
	if len(hist) != 4 {
		t.Fatalf("expected history capped at 4 samples, got %d", len(hist))
	}
	if hist[0].Value != 6 || hist[3].Value != 9 {
		t.Errorf("expected oldest-first window [6..9], got %v..%v", hist[0].Value, hist[3].Value)
	}
}

func TestState_CleanupSweepsDeadPrefixes(t *testing.T) {
	s := NewState()
	s.SetBarTarget("group1_1", 0.5, true)
	s.SetBarTarget("group2_1", 0.5, true)
	s.SetCoreTargets("group1_2", []float64{0.1}, true)
	s.AppendSample("group2_1", 1, 0, 10)

	s.Cleanup(livePrefixes("group1_1"))

	if _, ok := s.BarPercent("group1_1"); !ok {
		t.Error("expected live bar entry to survive cleanup")
	}
	if _, ok := s.BarPercent("group2_1"); ok {
		t.Error("expected dead bar entry removed")
	}
	if got := s.CorePercents("group1_2"); got != nil {
		t.Errorf("expected dead core vector removed, got %v", got)
	}
	if got := s.History("group2_1"); got != nil {
		t.Errorf("expected dead graph history removed, got %v", got)
	}
}
