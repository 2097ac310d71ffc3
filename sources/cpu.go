package sources

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// CPUSource publishes overall and per-core CPU usage from /proc/stat.
//
// Snapshot layout: group1_1 carries the aggregate reading (caption, value,
// unit, limits) and group1_2 carries one "core{K}_usage" field per core for
// core-bar panels.
type CPUSource struct {
	logger *slog.Logger

	// prev trackers, one entry per "cpu"/"cpuN" line, for delta
	// computation between collects.
	prevIdle  map[string]uint64
	prevTotal map[string]uint64

	// openProcStat is overridable for tests.
	openProcStat func() (io.ReadCloser, error)
}

// NewCPUSource creates a CPU source. If logger is nil, a no-op logger is
// used.
func NewCPUSource(logger *slog.Logger) *CPUSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CPUSource{
		logger:    logger,
		prevIdle:  make(map[string]uint64),
		prevTotal: make(map[string]uint64),
		openProcStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
	}
}

// Name returns the source identifier.
func (s *CPUSource) Name() string { return "cpu" }

// Description returns a human-readable summary.
func (s *CPUSource) Description() string {
	return "Overall and per-core CPU usage from /proc/stat"
}

// Interval returns the recommended polling interval.
func (s *CPUSource) Interval() time.Duration { return time.Second }

// Collect reads /proc/stat and computes usage deltas since the previous
// collect. The first collect seeds the counters and reports zero usage.
func (s *CPUSource) Collect(ctx context.Context) (telemetry.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := s.openProcStat()
	if err != nil {
		return nil, fmt.Errorf("sources: open /proc/stat: %w", err)
	}
	defer f.Close()

	snap := telemetry.Snapshot{
		"group1_1_caption":   telemetry.String("CPU"),
		"group1_1_unit":      telemetry.String("%"),
		"group1_1_min_limit": telemetry.Number(0),
		"group1_1_max_limit": telemetry.Number(100),
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		name := fields[0]

		var total, idle uint64
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("sources: parse /proc/stat %s field %d: %w", name, i, err)
			}
			total += val
			if i == 4 {
				idle = val
			}
		}

		usage := s.usageDelta(name, total, idle)

		if name == "cpu" {
			snap["group1_1_value"] = telemetry.Number(usage)
			snap["group1_1_numerical_value"] = telemetry.Number(usage)
		} else {
			core, err := strconv.Atoi(strings.TrimPrefix(name, "cpu"))
			if err != nil {
				continue
			}
			snap[fmt.Sprintf("group1_2_core%d_usage", core)] = telemetry.Number(usage)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sources: scan /proc/stat: %w", err)
	}

	return snap, nil
}

// usageDelta computes the busy percentage for one cpu line since its
// previous reading, seeding the trackers on first sight.
func (s *CPUSource) usageDelta(name string, total, idle uint64) float64 {
	prevTotal, seen := s.prevTotal[name]
	prevIdle := s.prevIdle[name]
	s.prevTotal[name] = total
	s.prevIdle[name] = idle

	if !seen || total <= prevTotal {
		return 0
	}

	deltaTotal := total - prevTotal
	deltaIdle := idle - prevIdle
	if deltaTotal == 0 {
		return 0
	}
	return float64(deltaTotal-deltaIdle) / float64(deltaTotal) * 100
}
