package telemetry

import (
	"strings"

	"gitlab.com/tinyland/lab/panel-pulse/internal/format"
)

// FilterInto copies every entry of raw whose key is a known prefix, or whose
// derived two-segment prefix (the text up to the second underscore) is a
// known prefix, into out. out is cleared first and unrelated keys are
// silently dropped. Single pass, O(len(raw)); runs once per telemetry
// update.
func FilterInto(raw Snapshot, prefixes map[string]struct{}, out Snapshot) {
	clear(out)

	for k, v := range raw {
		if _, ok := prefixes[k]; ok {
			out[k] = v
			continue
		}
		if p, ok := derivePrefix(k); ok {
			if _, known := prefixes[p]; known {
				out[k] = v
			}
		}
	}
}

// derivePrefix extracts the slot prefix from a full address: everything up
// to the second underscore. "group1_2_caption" derives "group1_2".
func derivePrefix(key string) (string, bool) {
	first := strings.IndexByte(key, '_')
	if first < 0 {
		return "", false
	}
	second := strings.IndexByte(key[first+1:], '_')
	if second < 0 {
		return "", false
	}
	return key[:first+1+second], true
}

// ContentItemData is the resolved view of one addressed item, recomputed
// from the filtered snapshot on every update. Missing fields take the
// documented defaults rather than erroring: empty caption/unit, zero
// min limit, 100 max limit.
type ContentItemData struct {
	Caption        string
	Value          string
	Unit           string
	NumericalValue float64
	MinValue       float64
	MaxValue       float64
}

// Percent returns the item's position within its configured limits, clamped
// to [0, 1]. A degenerate range (max <= min) reads as 0.
func (d ContentItemData) Percent() float64 {
	if d.MaxValue <= d.MinValue {
		return 0
	}
	p := (d.NumericalValue - d.MinValue) / (d.MaxValue - d.MinValue)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ItemData resolves the typed view for one prefix from the filtered values.
// The numerical reading prefers "{prefix}_numerical_value" and falls back to
// "{prefix}_value" parsed as a number. Numbers render with one decimal place
// when converted to display strings.
func ItemData(values Snapshot, prefix string) ContentItemData {
	b := NewKeyBuilder()

	d := ContentItemData{MaxValue: 100}

	if v, ok := values[string(b.FieldKey(prefix, "caption"))]; ok {
		if s, ok := v.AsString(); ok {
			d.Caption = s
		}
	}
	if v, ok := values[string(b.FieldKey(prefix, "value"))]; ok {
		if v.Kind() == KindNumber {
			f, _ := v.AsFloat()
			d.Value = format.Decimal1(f)
		} else if s, ok := v.AsString(); ok {
			d.Value = s
		}
	}
	if v, ok := values[string(b.FieldKey(prefix, "unit"))]; ok {
		if s, ok := v.AsString(); ok {
			d.Unit = s
		}
	}

	if v, ok := values[string(b.FieldKey(prefix, "numerical_value"))]; ok {
		if f, ok := v.AsFloat(); ok {
			d.NumericalValue = f
		}
	} else if v, ok := values[string(b.FieldKey(prefix, "value"))]; ok {
		if f, ok := v.AsFloat(); ok {
			d.NumericalValue = f
		}
	}

	if v, ok := values[string(b.FieldKey(prefix, "min_limit"))]; ok {
		if f, ok := v.AsFloat(); ok {
			d.MinValue = f
		}
	}
	if v, ok := values[string(b.FieldKey(prefix, "max_limit"))]; ok {
		if f, ok := v.AsFloat(); ok {
			d.MaxValue = f
		}
	}

	return d
}

// SlotValues returns every entry belonging to one prefix with the prefix
// stripped from the key: "group1_2_hour" becomes "hour". Renderers receive
// only their own slot's fields for text-overlay templating.
func SlotValues(values Snapshot, prefix string) Snapshot {
	out := make(Snapshot)
	cut := len(prefix) + 1

	for k, v := range values {
		if len(k) > cut && strings.HasPrefix(k, prefix) && k[len(prefix)] == '_' {
			out[k[cut:]] = v
		}
	}
	return out
}
