// Package config provides configuration parsing for panel-pulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level panel-pulse configuration.
type Config struct {
	// TickMS is the render tick interval in milliseconds (default 16,
	// roughly 60 fps).
	TickMS int `yaml:"tick_ms"`

	// LogFile is the path for log output. Empty logs to stderr.
	LogFile string `yaml:"log_file"`

	// Panels holds one entry per dashboard panel.
	Panels []PanelConfig `yaml:"panels"`
}

// PanelConfig describes one panel: its telemetry source, its addressing
// descriptor and its per-item content styles.
type PanelConfig struct {
	// Title is the panel's display name.
	Title string `yaml:"title"`

	// Theme names the color palette (lcars, cyberpunk, industrial,
	// synthwave, retro-terminal, material).
	Theme string `yaml:"theme"`

	// Source names the telemetry source feeding this panel (cpu, system,
	// clock, synth).
	Source string `yaml:"source"`

	// GroupItemCounts is the addressing descriptor: one entry per group,
	// each the number of items in that group. The valid slot prefixes
	// are exactly the expansion of this list.
	GroupItemCounts []int `yaml:"group_item_counts"`

	// Spacing is the gap between items along the layout axis, in cells.
	Spacing float64 `yaml:"spacing"`

	// Orientation stacks items "vertical" (default) or "horizontal".
	Orientation string `yaml:"orientation"`

	// GroupOrientations overrides the orientation per group index.
	GroupOrientations []string `yaml:"group_orientations"`

	// Animation controls value interpolation.
	Animation AnimationConfig `yaml:"animation"`

	// Items maps slot prefixes ("group1_1") to content styles. Prefixes
	// without an entry render as text.
	Items map[string]ItemConfig `yaml:"items"`
}

// AnimationConfig controls how animated values approach their targets.
type AnimationConfig struct {
	// Enabled turns interpolation on. When off, values snap immediately.
	Enabled bool `yaml:"enabled"`

	// Speed is the linear interpolation multiplier per second. Higher is
	// snappier; 4.0 reaches about 95% of a step within 0.75 s.
	Speed float64 `yaml:"speed"`
}

// ItemConfig selects and tunes the content renderer for one slot prefix.
type ItemConfig struct {
	// Type is the content renderer: bar, text, graph, core_bars, static,
	// arc, speedometer, level_bar.
	Type string `yaml:"type"`

	// FixedSize pins the item extent along the layout axis, in cells.
	// Ignored when AutoSize is true, except for graphs which always
	// claim their fixed size.
	FixedSize float64 `yaml:"fixed_size"`

	// AutoSize lets the layout solver share flex space with this item.
	AutoSize bool `yaml:"auto_size"`

	// MaxDataPoints bounds graph history length (default 120).
	MaxDataPoints int `yaml:"max_data_points"`

	// StartCore and EndCore bound the core range for core_bars items.
	// EndCore -1 means all observed cores.
	StartCore int `yaml:"start_core"`
	EndCore   int `yaml:"end_core"`

	// Image is the file path for static items.
	Image string `yaml:"image"`

	// Overlay holds text template lines; "{field}" placeholders resolve
	// against the item's slot values.
	Overlay []string `yaml:"overlay"`

	// Segments is the segment count for level_bar items (default 10).
	Segments int `yaml:"segments"`
}

// Default returns the built-in configuration: a CPU panel, a memory/disk
// panel and a synthetic demo panel.
func Default() *Config {
	return &Config{
		TickMS: 16,
		Panels: []PanelConfig{
			{
				Title:           "CPU",
				Theme:           "lcars",
				Source:          "cpu",
				GroupItemCounts: []int{2},
				Spacing:         1,
				Animation:       AnimationConfig{Enabled: true, Speed: 4},
				Items: map[string]ItemConfig{
					"group1_1": {Type: "bar", AutoSize: true},
					"group1_2": {Type: "core_bars", AutoSize: true, EndCore: -1},
				},
			},
			{
				Title:           "Memory / Disk",
				Theme:           "industrial",
				Source:          "system",
				GroupItemCounts: []int{1, 1},
				Spacing:         1,
				Animation:       AnimationConfig{Enabled: true, Speed: 4},
				Items: map[string]ItemConfig{
					"group1_1": {Type: "arc", AutoSize: true},
					"group2_1": {Type: "graph", FixedSize: 6},
				},
			},
			{
				Title:           "Demo",
				Theme:           "synthwave",
				Source:          "synth",
				GroupItemCounts: []int{3},
				Spacing:         1,
				Animation:       AnimationConfig{Enabled: true, Speed: 4},
				Items: map[string]ItemConfig{
					"group1_1": {Type: "speedometer", AutoSize: true},
					"group1_2": {Type: "level_bar", AutoSize: true},
					"group1_3": {Type: "text", AutoSize: true, Overlay: []string{"{caption}: {value}{unit}"}},
				},
			},
		},
	}
}

// DefaultPath returns the standard configuration file location,
// ~/.config/panel-pulse/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "panel-pulse", "config.yaml"), nil
}

// Load reads and parses a configuration file, applying defaults for
// missing fields. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.TickMS <= 0 {
		c.TickMS = 16
	}
	for i := range c.Panels {
		p := &c.Panels[i]
		if p.Theme == "" {
			p.Theme = "lcars"
		}
		if p.Spacing < 0 {
			p.Spacing = 0
		}
		if p.Animation.Speed <= 0 {
			p.Animation.Speed = 4
		}
	}
}

// Validate rejects descriptors no panel could run with.
func (c *Config) Validate() error {
	if len(c.Panels) == 0 {
		return fmt.Errorf("config: no panels defined")
	}
	for i, p := range c.Panels {
		if len(p.GroupItemCounts) == 0 {
			return fmt.Errorf("config: panel %d (%s): group_item_counts is empty", i, p.Title)
		}
		for g, n := range p.GroupItemCounts {
			if n < 0 {
				return fmt.Errorf("config: panel %d (%s): group %d has negative item count", i, p.Title, g+1)
			}
		}
	}
	return nil
}

// Save writes the configuration atomically: marshal to a temp file in the
// target directory, then rename over the destination. This prevents
// torn reads from a concurrently loading process.
func (c *Config) Save(path string) error {
	encoded, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-config-*.yaml")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("config: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("config: rename temp file: %w", err)
	}

	success = true
	return nil
}
