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

	"golang.org/x/sys/unix"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// SystemSource publishes memory and disk usage: group1_1 carries RAM usage
// from /proc/meminfo and group2_1 carries root filesystem usage via
// statfs.
type SystemSource struct {
	logger *slog.Logger

	// diskPath is the mount point measured for disk usage.
	diskPath string

	// Overridable for tests.
	openProcMeminfo func() (io.ReadCloser, error)
	statfs          func(path string, buf *unix.Statfs_t) error
}

// NewSystemSource creates a memory/disk source measuring the root
// filesystem. If logger is nil, a no-op logger is used.
func NewSystemSource(logger *slog.Logger) *SystemSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SystemSource{
		logger:   logger,
		diskPath: "/",
		openProcMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
		statfs: unix.Statfs,
	}
}

// Name returns the source identifier.
func (s *SystemSource) Name() string { return "system" }

// Description returns a human-readable summary.
func (s *SystemSource) Description() string {
	return "RAM usage from /proc/meminfo and root disk usage via statfs"
}

// Interval returns the recommended polling interval.
func (s *SystemSource) Interval() time.Duration { return 2 * time.Second }

// Collect gathers one memory and disk reading. A failure on one half is
// logged and that group is omitted rather than failing the whole snapshot.
func (s *SystemSource) Collect(ctx context.Context) (telemetry.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	snap := make(telemetry.Snapshot)

	if ram, err := s.readRAM(); err != nil {
		s.logger.Warn("system source: memory read failed", slog.String("error", err.Error()))
	} else {
		snap["group1_1_caption"] = telemetry.String("Memory")
		snap["group1_1_value"] = telemetry.Number(ram)
		snap["group1_1_numerical_value"] = telemetry.Number(ram)
		snap["group1_1_unit"] = telemetry.String("%")
		snap["group1_1_min_limit"] = telemetry.Number(0)
		snap["group1_1_max_limit"] = telemetry.Number(100)
	}

	if disk, err := s.readDisk(); err != nil {
		s.logger.Warn("system source: disk read failed", slog.String("error", err.Error()))
	} else {
		snap["group2_1_caption"] = telemetry.String("Disk " + s.diskPath)
		snap["group2_1_value"] = telemetry.Number(disk)
		snap["group2_1_numerical_value"] = telemetry.Number(disk)
		snap["group2_1_unit"] = telemetry.String("%")
		snap["group2_1_min_limit"] = telemetry.Number(0)
		snap["group2_1_max_limit"] = telemetry.Number(100)
	}

	if len(snap) == 0 {
		return nil, fmt.Errorf("sources: system source produced no readings")
	}
	return snap, nil
}

// readRAM computes used memory percent as (MemTotal - MemAvailable) /
// MemTotal.
func (s *SystemSource) readRAM() (float64, error) {
	f, err := s.openProcMeminfo()
	if err != nil {
		return 0, fmt.Errorf("open /proc/meminfo: %w", err)
	}
	defer f.Close()

	var memTotal, memAvailable uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			memTotal, err = parseMeminfoLine(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			memAvailable, err = parseMeminfoLine(line)
		default:
			continue
		}
		if err != nil {
			return 0, err
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan /proc/meminfo: %w", err)
	}
	if memTotal == 0 {
		return 0, fmt.Errorf("meminfo: MemTotal missing or zero")
	}

	return float64(memTotal-memAvailable) / float64(memTotal) * 100, nil
}

// parseMeminfoLine parses a "Key:   12345 kB" line into its numeric value.
func parseMeminfoLine(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("meminfo: short line %q", line)
	}
	val, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("meminfo: parse %q: %w", line, err)
	}
	return val, nil
}

// readDisk computes used percent of the measured filesystem.
func (s *SystemSource) readDisk() (float64, error) {
	var stat unix.Statfs_t
	if err := s.statfs(s.diskPath, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", s.diskPath, err)
	}
	if stat.Blocks == 0 {
		return 0, fmt.Errorf("statfs %s: zero block count", s.diskPath)
	}

	used := stat.Blocks - stat.Bfree
	return float64(used) / float64(stat.Blocks) * 100, nil
}
