// Package telemetry provides the flat, string-addressed snapshot model that
// every panel binds against. A producer publishes a Snapshot of loosely-typed
// scalars keyed by "group{G}_{N}_{field}" addresses; the panel filters that
// snapshot down to the addresses it owns and resolves typed per-item views
// from it.
package telemetry

import "strconv"

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	// KindNull is the zero Value.
	KindNull Kind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindString holds a string.
	KindString
	// KindBool holds a bool.
	KindBool
)

// Value is a tagged scalar at the snapshot boundary. Producers publish
// numbers, strings or bools; typed extraction happens only inside ItemData
// and the renderers.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the null Value.
func Null() Value { return Value{} }

// Kind returns the dynamic type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsFloat returns the value as a float64. Strings are parsed; bools map to
// 0/1. The second return is false when no numeric reading exists.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsString returns the value as a string. The second return is false for
// null values; numbers are formatted with one decimal place, matching the
// display convention used across the renderers.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', 1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// AsBool returns the value as a bool. Non-bool values report false.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Snapshot is a flat mapping from full address to scalar. Telemetry sources
// hand one Snapshot per update cycle to each interested panel.
type Snapshot map[string]Value
