// Package tui hosts the dashboard panels in a Bubbletea program. It drives
// the fixed-cadence animation tick, fans telemetry snapshots out to their
// panels, and lays the rendered panels into a row with a status footer.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/panel-pulse/config"
	"gitlab.com/tinyland/lab/panel-pulse/internal/format"
	"gitlab.com/tinyland/lab/panel-pulse/panel"
	"gitlab.com/tinyland/lab/panel-pulse/sources"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// collectTimeout bounds one source collect so a stuck reader cannot stall
// its polling loop forever.
const collectTimeout = 5 * time.Second

// tickMsg drives the animation cadence.
type tickMsg time.Time

// snapshotMsg delivers one collected snapshot from a source poller.
type snapshotMsg struct {
	source string
	snap   telemetry.Snapshot
}

// collectErrMsg reports a failed collect; the poller keeps its cadence.
type collectErrMsg struct {
	source string
	err    error
}

// Model is the top-level Bubbletea model for the panel-pulse dashboard.
type Model struct {
	panels   []*panel.Panel
	registry *sources.Registry
	tick     time.Duration

	width   int
	height  int
	focused int
	animOn  bool
	ready   bool

	lastUpdate time.Time
	logger     *slog.Logger

	cfg *config.Config
}

// NewModel builds the dashboard model from configuration. Panels are
// created for every configured entry; sources without a panel are not
// polled. If logger is nil, a no-op logger is used.
func NewModel(cfg *config.Config, registry *sources.Registry, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	panels := make([]*panel.Panel, 0, len(cfg.Panels))
	for _, pc := range cfg.Panels {
		panels = append(panels, panel.New(pc, logger))
	}

	zone.NewGlobal()

	return Model{
		panels:   panels,
		registry: registry,
		tick:     time.Duration(cfg.TickMS) * time.Millisecond,
		animOn:   true,
		logger:   logger,
		cfg:      cfg,
	}
}

// Init starts the animation tick and one poller per source that feeds at
// least one panel.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}

	polled := make(map[string]bool)
	for _, p := range m.panels {
		name := p.Source()
		if polled[name] {
			continue
		}
		polled[name] = true

		src, err := m.registry.Get(name)
		if err != nil {
			m.logger.Warn("tui: panel references unknown source", slog.String("source", name))
			continue
		}
		cmds = append(cmds, collectCmd(src))
	}

	return tea.Batch(cmds...)
}

// tickCmd schedules the next animation tick.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// collectCmd runs one collect for a source and reports the snapshot.
func collectCmd(src sources.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()

		snap, err := src.Collect(ctx)
		if err != nil {
			return collectErrMsg{source: src.Name(), err: err}
		}
		return snapshotMsg{source: src.Name(), snap: snap}
	}
}

// recollectCmd schedules the next collect after the source's interval.
func (m Model) recollectCmd(name string) tea.Cmd {
	src, err := m.registry.Get(name)
	if err != nil {
		return nil
	}
	return tea.Tick(src.Interval(), func(time.Time) tea.Msg {
		return collectCmd(src)()
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextPanel):
			if len(m.panels) > 0 {
				m.focused = (m.focused + 1) % len(m.panels)
			}
		case key.Matches(msg, keys.PrevPanel):
			if len(m.panels) > 0 {
				m.focused = (m.focused - 1 + len(m.panels)) % len(m.panels)
			}
		case key.Matches(msg, keys.ToggleAnim):
			m.animOn = !m.animOn
			m.applyAnimToggle()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i := range m.panels {
				if zone.Get(panelZoneID(i)).InBounds(msg) {
					m.focused = i
					break
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tickMsg:
		now := time.Time(msg)
		for _, p := range m.panels {
			p.Tick(now)
		}
		return m, m.tickCmd()

	case snapshotMsg:
		for _, p := range m.panels {
			if p.Source() == msg.source {
				p.ApplyUpdate(msg.snap)
			}
		}
		m.lastUpdate = time.Now()
		return m, m.recollectCmd(msg.source)

	case collectErrMsg:
		m.logger.Warn("tui: collect failed",
			slog.String("source", msg.source),
			slog.String("error", msg.err.Error()))
		return m, m.recollectCmd(msg.source)
	}

	return m, nil
}

// applyAnimToggle pushes the global animation flag into every panel,
// bumping each panel's config version. Toggling back on restores each
// panel's own configured setting.
func (m *Model) applyAnimToggle() {
	for i, p := range m.panels {
		if i >= len(m.cfg.Panels) {
			break
		}
		pc := m.cfg.Panels[i]
		if !m.animOn {
			pc.Animation.Enabled = false
		}
		p.SetConfig(pc)
	}
}

// View implements tea.Model: panels side by side above a status footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if len(m.panels) == 0 {
		return "No panels configured."
	}

	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)

	panelHeight := m.height - footerHeight
	panelWidth := m.width / len(m.panels)
	if panelWidth < 8 || panelHeight < 4 {
		return styleError.Render("Terminal too small for the configured panels.")
	}

	rendered := make([]string, 0, len(m.panels))
	for i, p := range m.panels {
		w := panelWidth
		if i == len(m.panels)-1 {
			// Last panel absorbs the division remainder.
			w = m.width - panelWidth*(len(m.panels)-1)
		}
		rendered = append(rendered, zone.Mark(panelZoneID(i), p.Render(w, panelHeight)))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, row, footer))
}

// renderFooter shows the focused panel, animation state and data age.
func (m Model) renderFooter() string {
	focusedTitle := ""
	if m.focused < len(m.panels) {
		focusedTitle = m.panels[m.focused].Title()
	}

	anim := "anim on"
	if !m.animOn {
		anim = "anim off"
	}

	left := styleFooterKey.Render(" "+focusedTitle+" ") +
		styleFooterText.Render(" tab: switch  a: "+anim+"  q: quit")
	right := styleFooterText.Render("updated " + format.Age(m.lastUpdate) + " ago ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + styleFooterText.Render(spaces(gap)) + right
}

func panelZoneID(i int) string {
	return "panel-" + string(rune('a'+i))
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
