package sources

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func fakeMeminfo(content string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func fakeStatfs(blocks, bfree uint64) func(string, *unix.Statfs_t) error {
	return func(path string, buf *unix.Statfs_t) error {
		buf.Blocks = blocks
		buf.Bfree = bfree
		return nil
	}
}

func TestSystemSource_MemoryAndDisk(t *testing.T) {
	s := NewSystemSource(nil)
	s.openProcMeminfo = fakeMeminfo("MemTotal:  1000 kB\nMemAvailable:  250 kB\nSwapTotal: 0 kB\n")
	s.statfs = fakeStatfs(200, 50)

	snap, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if f, _ := snap["group1_1_value"].AsFloat(); f != 75 {
		t.Errorf("expected 75%% memory used, got %v", f)
	}
	if f, _ := snap["group2_1_value"].AsFloat(); f != 75 {
		t.Errorf("expected 75%% disk used, got %v", f)
	}
	if v, _ := snap["group1_1_caption"].AsString(); v != "Memory" {
		t.Errorf("expected memory caption, got %q", v)
	}
	if v, _ := snap["group2_1_caption"].AsString(); !strings.HasPrefix(v, "Disk") {
		t.Errorf("expected disk caption, got %q", v)
	}
}

func TestSystemSource_HalfFailureOmitsGroup(t *testing.T) {
	s := NewSystemSource(nil)
	s.openProcMeminfo = fakeMeminfo("MemTotal: 1000 kB\nMemAvailable: 500 kB\n")
	s.statfs = func(string, *unix.Statfs_t) error { return errors.New("statfs down") }

	snap, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("expected partial snapshot, got error: %v", err)
	}
	if _, ok := snap["group1_1_value"]; !ok {
		t.Error("expected memory reading present")
	}
	if _, ok := snap["group2_1_value"]; ok {
		t.Error("expected disk group omitted after statfs failure")
	}
}

func TestSystemSource_AllFailuresError(t *testing.T) {
	s := NewSystemSource(nil)
	s.openProcMeminfo = func() (io.ReadCloser, error) { return nil, errors.New("no meminfo") }
	s.statfs = func(string, *unix.Statfs_t) error { return errors.New("no statfs") }

	if _, err := s.Collect(context.Background()); err == nil {
		t.Error("expected error when no readings are available")
	}
}

func TestSystemSource_MissingMemTotal(t *testing.T) {
	s := NewSystemSource(nil)
	s.openProcMeminfo = fakeMeminfo("MemAvailable: 500 kB\n")
	s.statfs = fakeStatfs(200, 50)

	snap, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, ok := snap["group1_1_value"]; ok {
		t.Error("expected memory group omitted without MemTotal")
	}
}
