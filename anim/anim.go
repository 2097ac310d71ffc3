// Package anim holds the interpolated per-item state that smooths telemetry
// readings between updates. Each bar-type address owns one animated scalar,
// each core-bars address owns a vector of them, and each graph address owns
// a bounded sample history. State persists across telemetry updates and is
// garbage-collected whenever the live prefix set shrinks.
package anim

import (
	"strings"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

const (
	// SnapThreshold is the absolute difference below which an animated
	// value is considered settled and snapped onto its target.
	SnapThreshold = 0.001

	// targetChangeThreshold suppresses target updates smaller than 0.5%
	// so sensor jitter does not keep animations churning at frame rate.
	targetChangeThreshold = 0.005
)

// Value is one interpolated scalar with its current/target pair.
type Value struct {
	Current float64
	Target  float64

	// firstUpdate marks a value that has never observed a target. The
	// first observation snaps Current onto Target so a fresh panel does
	// not animate up from zero.
	firstUpdate bool
}

// newValue returns an uninitialized animated value.
func newValue() *Value {
	return &Value{firstUpdate: true}
}

// settled reports whether the value sits within the snap threshold of its
// target.
func (v *Value) settled() bool {
	d := v.Current - v.Target
	if d < 0 {
		d = -d
	}
	return d <= SnapThreshold
}

// setTarget applies the hysteresis and first-update rules. When animation
// is disabled the value snaps immediately.
func (v *Value) setTarget(target float64, animate bool) {
	d := v.Target - target
	if d < 0 {
		d = -d
	}
	if d > targetChangeThreshold {
		v.Target = target
	}

	if v.firstUpdate || !animate {
		v.Current = v.Target
		v.firstUpdate = false
	}
}

// step advances the value toward its target by the linear-with-speed rule
// and snaps once within the threshold. Reports whether the value moved.
func (v *Value) step(speed, elapsed float64) bool {
	if v.settled() {
		if v.Current != v.Target {
			v.Current = v.Target
			return true
		}
		return false
	}

	v.Current += (v.Target - v.Current) * speed * elapsed
	if v.settled() {
		v.Current = v.Target
	}
	return true
}

// Sample is one graph history point.
type Sample struct {
	Value     float64
	Timestamp float64
}

// State owns all animated values and graph histories for one panel.
type State struct {
	bars     map[string]*Value
	coreBars map[string][]*Value
	graphs   map[string][]Sample

	keys *telemetry.KeyBuilder
}

// NewState returns an empty animation state.
func NewState() *State {
	return &State{
		bars:     make(map[string]*Value),
		coreBars: make(map[string][]*Value),
		graphs:   make(map[string][]Sample),
		keys:     telemetry.NewKeyBuilder(),
	}
}

// SetBarTarget records a new target percent for the bar animation of one
// prefix, creating the entry on first sight.
func (s *State) SetBarTarget(prefix string, target float64, animate bool) {
	key := s.keys.BarKey(prefix)
	v, ok := s.bars[string(key)]
	if !ok {
		v = newValue()
		s.bars[string(key)] = v
	}
	v.setTarget(target, animate)
}

// BarPercent returns the animated percent for a prefix. The second return
// is false when no animated entry exists yet; callers fall back to the raw
// item percent.
func (s *State) BarPercent(prefix string) (float64, bool) {
	v, ok := s.bars[string(s.keys.BarKey(prefix))]
	if !ok {
		return 0, false
	}
	return v.Current, true
}

// SetCoreTargets records per-core targets for one prefix. The vector is
// resized to the observed core count first: removed cores are truncated,
// new cores join uninitialized so they snap on this update.
func (s *State) SetCoreTargets(prefix string, targets []float64, animate bool) {
	vec := s.coreBars[prefix]
	for len(vec) < len(targets) {
		vec = append(vec, newValue())
	}
	vec = vec[:len(targets)]
	s.coreBars[prefix] = vec

	for i, t := range targets {
		vec[i].setTarget(t, animate)
	}
}

// CorePercents returns the animated per-core values for a prefix, or nil
// when none exist.
func (s *State) CorePercents(prefix string) []float64 {
	vec, ok := s.coreBars[prefix]
	if !ok {
		return nil
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v.Current
	}
	return out
}

// AppendSample appends one graph history point for a prefix, evicting the
// oldest samples beyond maxPoints.
func (s *State) AppendSample(prefix string, value, timestamp float64, maxPoints int) {
	key := s.keys.GraphKey(prefix)
	hist, ok := s.graphs[string(key)]
	if !ok {
		s.graphs[string(key)] = []Sample{{Value: value, Timestamp: timestamp}}
		return
	}

	hist = append(hist, Sample{Value: value, Timestamp: timestamp})
	if maxPoints > 0 && len(hist) > maxPoints {
		hist = hist[len(hist)-maxPoints:]
	}
	s.graphs[string(key)] = hist
}

// History returns the graph samples for a prefix, oldest first. Nil when
// the prefix has no history.
func (s *State) History(prefix string) []Sample {
	return s.graphs[string(s.keys.GraphKey(prefix))]
}

// Animating reports whether any value still sits outside the snap threshold
// of its target. Used by the tick path to skip elapsed-time bookkeeping when
// everything is settled.
func (s *State) Animating() bool {
	for _, v := range s.bars {
		if !v.settled() {
			return true
		}
	}
	for _, vec := range s.coreBars {
		for _, v := range vec {
			if !v.settled() {
				return true
			}
		}
	}
	return false
}

// Step advances every unsettled value toward its target: linear
// interpolation scaled by speed and elapsed seconds, snapping once within
// the threshold. Reports whether anything moved (a redraw is needed).
func (s *State) Step(speed, elapsed float64) bool {
	moved := false
	for _, v := range s.bars {
		if v.step(speed, elapsed) {
			moved = true
		}
	}
	for _, vec := range s.coreBars {
		for _, v := range vec {
			if v.step(speed, elapsed) {
				moved = true
			}
		}
	}
	return moved
}

// Cleanup removes every entry whose derived prefix is no longer live. Bar
// keys strip their "_bar" suffix and graph keys their "_graph" suffix
// before the membership check; core-bar keys are raw prefixes. Runs after
// every telemetry update and on descriptor changes.
func (s *State) Cleanup(prefixes map[string]struct{}) {
	for k := range s.bars {
		p, ok := strings.CutSuffix(k, "_bar")
		if !ok {
			delete(s.bars, k)
			continue
		}
		if _, live := prefixes[p]; !live {
			delete(s.bars, k)
		}
	}

	for k := range s.coreBars {
		if _, live := prefixes[k]; !live {
			delete(s.coreBars, k)
		}
	}

	for k := range s.graphs {
		p, ok := strings.CutSuffix(k, "_graph")
		if !ok {
			delete(s.graphs, k)
			continue
		}
		if _, live := prefixes[p]; !live {
			delete(s.graphs, k)
		}
	}
}
