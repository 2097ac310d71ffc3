package color

import "github.com/charmbracelet/lipgloss"

// Theme is the palette one panel draws with. The frame renderer uses Frame
// and Accent; content renderers use Fill, Text and the threshold colors.
type Theme struct {
	// Name is the theme identifier used in configuration.
	Name string
	// Frame colors the decorative border and group dividers.
	Frame lipgloss.Color
	// Accent colors captions and gauge needles.
	Accent lipgloss.Color
	// Fill colors gauge and bar fill below the warning threshold.
	Fill lipgloss.Color
	// Warn colors fill between the warning and danger thresholds.
	Warn lipgloss.Color
	// Danger colors fill at or above the danger threshold.
	Danger lipgloss.Color
	// Text colors value and unit text.
	Text lipgloss.Color
	// Dim colors empty gauge track and secondary text.
	Dim lipgloss.Color
}

// themes holds the built-in palettes, named after the visual styles they
// approximate.
var themes = map[string]Theme{
	"lcars": {
		Name:   "lcars",
		Frame:  lipgloss.Color("#FF9900"),
		Accent: lipgloss.Color("#CC99CC"),
		Fill:   lipgloss.Color("#9999FF"),
		Warn:   lipgloss.Color("#FFCC66"),
		Danger: lipgloss.Color("#CC6666"),
		Text:   lipgloss.Color("#FFCC99"),
		Dim:    lipgloss.Color("#555577"),
	},
	"cyberpunk": {
		Name:   "cyberpunk",
		Frame:  lipgloss.Color("#00F0FF"),
		Accent: lipgloss.Color("#FF00A0"),
		Fill:   lipgloss.Color("#00F0FF"),
		Warn:   lipgloss.Color("#FCEE0A"),
		Danger: lipgloss.Color("#FF003C"),
		Text:   lipgloss.Color("#D1F7FF"),
		Dim:    lipgloss.Color("#1A3A3F"),
	},
	"industrial": {
		Name:   "industrial",
		Frame:  lipgloss.Color("#8A8A8A"),
		Accent: lipgloss.Color("#D97E00"),
		Fill:   lipgloss.Color("#5F8700"),
		Warn:   lipgloss.Color("#D7AF00"),
		Danger: lipgloss.Color("#D70000"),
		Text:   lipgloss.Color("#DADADA"),
		Dim:    lipgloss.Color("#4E4E4E"),
	},
	"synthwave": {
		Name:   "synthwave",
		Frame:  lipgloss.Color("#FF6AD5"),
		Accent: lipgloss.Color("#C774E8"),
		Fill:   lipgloss.Color("#AD8CFF"),
		Warn:   lipgloss.Color("#FFB86C"),
		Danger: lipgloss.Color("#FF5555"),
		Text:   lipgloss.Color("#94D0FF"),
		Dim:    lipgloss.Color("#3B2D5E"),
	},
	"retro-terminal": {
		Name:   "retro-terminal",
		Frame:  lipgloss.Color("#33FF33"),
		Accent: lipgloss.Color("#33FF33"),
		Fill:   lipgloss.Color("#33FF33"),
		Warn:   lipgloss.Color("#AAFF33"),
		Danger: lipgloss.Color("#FFFF33"),
		Text:   lipgloss.Color("#33FF33"),
		Dim:    lipgloss.Color("#115511"),
	},
	"material": {
		Name:   "material",
		Frame:  lipgloss.Color("#455A64"),
		Accent: lipgloss.Color("#2196F3"),
		Fill:   lipgloss.Color("#4CAF50"),
		Warn:   lipgloss.Color("#FFC107"),
		Danger: lipgloss.Color("#F44336"),
		Text:   lipgloss.Color("#ECEFF1"),
		Dim:    lipgloss.Color("#37474F"),
	},
}

// DefaultTheme is used when a configured theme name is unknown.
const DefaultTheme = "lcars"

// Lookup resolves a theme by name, falling back to DefaultTheme for
// unknown names.
func Lookup(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// Names returns the sorted list of built-in theme names.
func Names() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	// Small fixed set; insertion sort keeps this dependency-free.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}
