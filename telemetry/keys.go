package telemetry

import "strconv"

// KeyBuilder composes snapshot addresses into a reusable byte buffer so the
// update and render hot paths never allocate per key. Each worker owns its
// own builder; the zero value is ready to use but not safe for concurrent
// use.
//
// Returned slices alias the internal buffer and are invalidated by the next
// call. Callers either consume them immediately in a map index expression
// (`m[string(key)]`, which the compiler keeps allocation-free) or copy them
// with string(key) when the key must outlive the call.
type KeyBuilder struct {
	buf []byte
}

// NewKeyBuilder returns a builder with a pre-sized buffer.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{buf: make([]byte, 0, 64)}
}

// Prefix builds a slot prefix like "group1_2". Group and item are 1-based.
func (b *KeyBuilder) Prefix(group, item int) []byte {
	b.buf = append(b.buf[:0], "group"...)
	b.buf = strconv.AppendInt(b.buf, int64(group), 10)
	b.buf = append(b.buf, '_')
	b.buf = strconv.AppendInt(b.buf, int64(item), 10)
	return b.buf
}

// FieldKey builds a full address like "group1_2_caption".
func (b *KeyBuilder) FieldKey(prefix, field string) []byte {
	b.buf = append(b.buf[:0], prefix...)
	b.buf = append(b.buf, '_')
	b.buf = append(b.buf, field...)
	return b.buf
}

// BarKey builds the animation key for a bar-type item, "group1_2_bar".
func (b *KeyBuilder) BarKey(prefix string) []byte {
	b.buf = append(b.buf[:0], prefix...)
	b.buf = append(b.buf, "_bar"...)
	return b.buf
}

// GraphKey builds the history key for a graph item, "group1_2_graph".
func (b *KeyBuilder) GraphKey(prefix string) []byte {
	b.buf = append(b.buf[:0], prefix...)
	b.buf = append(b.buf, "_graph"...)
	return b.buf
}

// CoreKey builds a per-core usage address like "group1_2_core0_usage".
func (b *KeyBuilder) CoreKey(prefix string, core int) []byte {
	b.buf = append(b.buf[:0], prefix...)
	b.buf = append(b.buf, "_core"...)
	b.buf = strconv.AppendInt(b.buf, int64(core), 10)
	b.buf = append(b.buf, "_usage"...)
	return b.buf
}

// GeneratePrefixes expands a group-item-counts descriptor into the ordered
// list of slot prefixes it describes. counts[0]=2, counts[1]=1 yields
// ["group1_1", "group1_2", "group2_1"]. The expansion is deterministic:
// regenerating from an unchanged descriptor yields an identical list, so the
// strings are safe to use as animation and cache keys between regenerations.
func GeneratePrefixes(counts []int) []string {
	total := 0
	for _, c := range counts {
		total += c
	}
	prefixes := make([]string, 0, total)

	b := NewKeyBuilder()
	for groupIdx, count := range counts {
		for item := 1; item <= count; item++ {
			prefixes = append(prefixes, string(b.Prefix(groupIdx+1, item)))
		}
	}
	return prefixes
}

// PrefixSet converts a prefix list into a set for O(1) membership checks.
func PrefixSet(prefixes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		set[p] = struct{}{}
	}
	return set
}
