// Package sources provides the telemetry producers that feed panel
// snapshots. Each source gathers readings from one subsystem (CPU, memory
// and disk, wall clock, or a synthetic generator) and publishes them as a
// flat snapshot using the "group{G}_{N}_{field}" addressing convention.
package sources

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// Source is the interface all telemetry producers implement. A source owns
// its own cadence; the host polls it at the interval it recommends and
// fans the snapshot out to every panel configured with its name.
type Source interface {
	// Name returns the source's unique identifier (e.g. "cpu", "system").
	// Names must be unique within a Registry.
	Name() string

	// Description returns a human-readable summary of what this source
	// publishes.
	Description() string

	// Interval returns the recommended polling interval.
	Interval() time.Duration

	// Collect gathers one snapshot. The context should be respected for
	// cancellation of long-running reads.
	Collect(ctx context.Context) (telemetry.Snapshot, error)
}

// Registry holds registered sources and provides lookup by name.
type Registry struct {
	sources []Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a source. A source with the same name replaces the
// existing one.
func (r *Registry) Register(s Source) {
	for i, existing := range r.sources {
		if existing.Name() == s.Name() {
			r.sources[i] = s
			return
		}
	}
	r.sources = append(r.sources, s)
}

// Get returns the source with the given name.
func (r *Registry) Get(name string) (Source, error) {
	for _, s := range r.sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sources: unknown source %q", name)
}

// All returns the registered sources in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}
