package sources

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// ClockSource publishes the wall clock: group1_1 carries the formatted
// time as its value plus hour/minute/second slot fields for overlay
// templating, with seconds-of-minute as the numeric reading so gauges can
// sweep.
type ClockSource struct {
	// now is overridable for tests.
	now func() time.Time
}

// NewClockSource creates a clock source.
func NewClockSource() *ClockSource {
	return &ClockSource{now: time.Now}
}

// Name returns the source identifier.
func (s *ClockSource) Name() string { return "clock" }

// Description returns a human-readable summary.
func (s *ClockSource) Description() string {
	return "Wall clock time with hour/minute/second fields"
}

// Interval returns the recommended polling interval.
func (s *ClockSource) Interval() time.Duration { return time.Second }

// Collect publishes the current time.
func (s *ClockSource) Collect(ctx context.Context) (telemetry.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	now := s.now()
	return telemetry.Snapshot{
		"group1_1_caption":         telemetry.String("Time"),
		"group1_1_value":           telemetry.String(now.Format("15:04:05")),
		"group1_1_numerical_value": telemetry.Number(float64(now.Second())),
		"group1_1_min_limit":       telemetry.Number(0),
		"group1_1_max_limit":       telemetry.Number(60),
		"group1_1_hour":            telemetry.Number(float64(now.Hour())),
		"group1_1_minute":          telemetry.Number(float64(now.Minute())),
		"group1_1_second":          telemetry.Number(float64(now.Second())),
		"group1_1_date":            telemetry.String(now.Format("2006-01-02")),
	}, nil
}
