package sources

import (
	"context"
	"math"
	"time"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// SynthSource publishes deterministic waveforms for demos and layout work:
// group1_1 a sine sweep, group1_2 a sawtooth, group1_3 a square wave. No
// hardware access, so it runs anywhere.
type SynthSource struct {
	start time.Time

	// now is overridable for tests.
	now func() time.Time
}

// NewSynthSource creates a synthetic source.
func NewSynthSource() *SynthSource {
	return &SynthSource{start: time.Now(), now: time.Now}
}

// Name returns the source identifier.
func (s *SynthSource) Name() string { return "synth" }

// Description returns a human-readable summary.
func (s *SynthSource) Description() string {
	return "Synthetic sine, sawtooth and square waveforms for demos"
}

// Interval returns the recommended polling interval.
func (s *SynthSource) Interval() time.Duration { return 500 * time.Millisecond }

// Collect publishes the waveform values for the current instant.
func (s *SynthSource) Collect(ctx context.Context) (telemetry.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	t := s.now().Sub(s.start).Seconds()

	sine := (math.Sin(t/5*2*math.Pi) + 1) / 2 * 100
	saw := math.Mod(t*10, 100)
	square := 20.0
	if math.Mod(t, 6) >= 3 {
		square = 80
	}

	snap := telemetry.Snapshot{}
	put := func(prefix, caption string, value float64) {
		snap[prefix+"_caption"] = telemetry.String(caption)
		snap[prefix+"_value"] = telemetry.Number(value)
		snap[prefix+"_numerical_value"] = telemetry.Number(value)
		snap[prefix+"_unit"] = telemetry.String("%")
		snap[prefix+"_min_limit"] = telemetry.Number(0)
		snap[prefix+"_max_limit"] = telemetry.Number(100)
	}
	put("group1_1", "Sine", sine)
	put("group1_2", "Sawtooth", saw)
	put("group1_3", "Square", square)

	return snap, nil
}
