package telemetry

import "testing"

func TestGeneratePrefixes_Expansion(t *testing.T) {
	prefixes := GeneratePrefixes([]int{2, 1})

	want := []string{"group1_1", "group1_2", "group2_1"}
	if len(prefixes) != len(want) {
		t.Fatalf("expected %d prefixes, got %d: %v", len(want), len(prefixes), prefixes)
	}
	for i, p := range want {
		if prefixes[i] != p {
			t.Errorf("prefix %d: expected %q, got %q", i, p, prefixes[i])
		}
	}
}

func TestGeneratePrefixes_CountAndUniqueness(t *testing.T) {
	counts := []int{3, 0, 5, 1}
	prefixes := GeneratePrefixes(counts)

	total := 0
	for _, c := range counts {
		total += c
	}
	if len(prefixes) != total {
		t.Errorf("expected %d prefixes, got %d", total, len(prefixes))
	}

	seen := make(map[string]bool)
	for _, p := range prefixes {
		if seen[p] {
			t.Errorf("duplicate prefix %q", p)
		}
		seen[p] = true
	}
}

func TestGeneratePrefixes_Deterministic(t *testing.T) {
	counts := []int{2, 4}
	a := GeneratePrefixes(counts)
	b := GeneratePrefixes(counts)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("index %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestGeneratePrefixes_Empty(t *testing.T) {
	if got := GeneratePrefixes(nil); len(got) != 0 {
		t.Errorf("expected no prefixes for nil descriptor, got %v", got)
	}
}

func TestKeyBuilder_Composition(t *testing.T) {
	b := NewKeyBuilder()

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"prefix", string(b.Prefix(1, 2)), "group1_2"},
		{"field", string(b.FieldKey("group1_2", "caption")), "group1_2_caption"},
		{"bar", string(b.BarKey("group1_2")), "group1_2_bar"},
		{"graph", string(b.GraphKey("group1_2")), "group1_2_graph"},
		{"core", string(b.CoreKey("group1_2", 7)), "group1_2_core7_usage"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, c.got)
		}
	}
}

func TestKeyBuilder_BufferReuse(t *testing.T) {
	b := NewKeyBuilder()

	// A later call reuses the buffer, so earlier results must be consumed
	// or copied first. Verify the second result is correct after reuse.
	_ = b.FieldKey("group9_9", "numerical_value")
	got := string(b.BarKey("group1_1"))
	if got != "group1_1_bar" {
		t.Errorf("expected %q after buffer reuse, got %q", "group1_1_bar", got)
	}
}
