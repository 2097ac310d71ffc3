package color

import "testing"

func TestShouldDisableColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if !ShouldDisableColor() {
		t.Error("expected color disabled when NO_COLOR is set")
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"color code", "\x1b[31mred\x1b[0m", "red"},
		{"truecolor", "\x1b[38;2;255;153;0mframe\x1b[0m", "frame"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		if got := StripANSI(c.input); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestLookup_KnownAndFallback(t *testing.T) {
	if got := Lookup("cyberpunk"); got.Name != "cyberpunk" {
		t.Errorf("expected cyberpunk theme, got %q", got.Name)
	}
	if got := Lookup("no-such-theme"); got.Name != DefaultTheme {
		t.Errorf("expected fallback to %q, got %q", DefaultTheme, got.Name)
	}
}

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()

	if len(names) != len(themes) {
		t.Fatalf("expected %d names, got %d", len(themes), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, n := range names {
		if _, ok := themes[n]; !ok {
			t.Errorf("unknown name %q", n)
		}
	}
}

func TestThemes_FullPalettes(t *testing.T) {
	for name, theme := range themes {
		if theme.Name != name {
			t.Errorf("theme %q: name field is %q", name, theme.Name)
		}
		if theme.Frame == "" || theme.Fill == "" || theme.Warn == "" || theme.Danger == "" || theme.Text == "" || theme.Dim == "" {
			t.Errorf("theme %q has unset palette entries", name)
		}
	}
}
