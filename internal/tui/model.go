// Package tui renders a dashboard of meters in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/dashboard"
	"github.com/gonewx/angrymeter/pkg/meter"
)

// barWidth is the number of cells a full-scale meter occupies.
const barWidth = 40

// tickerPeriod is how long each ticker line stays on screen.
const tickerPeriod = 2 * time.Second

type tickMsg time.Time

type configMsg config.Update

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3366"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the bubbletea model. It owns the dashboard and steps it on every tick.
type Model struct {
	dash    *dashboard.Dashboard
	updates <-chan config.Update
	status  string
	failed  bool
}

// New creates a model. updates may be nil when hot reload is off.
func New(d *dashboard.Dashboard, updates <-chan config.Update) Model {
	return Model{dash: d, updates: updates}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForUpdate())
}

func tick() tea.Cmd {
	return tea.Tick(dashboard.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForUpdate blocks on the watcher channel; a closed channel ends the chain.
func (m Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg(u)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.dash.Step(dashboard.TickInterval)
		return m, tick()

	case configMsg:
		if err := m.dash.Apply(config.Update(msg)); err != nil {
			m.status, m.failed = "config rejected: "+err.Error(), true
		} else {
			m.status, m.failed = "config reloaded", false
		}
		return m, m.waitForUpdate()

	case tea.KeyMsg:
		score := m.dash.Score()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			score++
		case "left", "h":
			score--
		case "up", "k":
			score += 10
		case "down", "j":
			score -= 10
		case "r":
			score = 0
		default:
			if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
				score = float64(s[0]-'0') * 10
			}
		}
		m.dash.SetScore(score)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ANGRY METER  %3.0f", m.dash.Score())))
	b.WriteString("\n\n")

	for _, g := range m.dash.Gauges() {
		b.WriteString(borderStyle.Render(gaugeView(g)))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := mutedStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(mutedStyle.Render("←/→ ±1  ↑/↓ ±10  0-9 jump  r reset  q quit"))
	return b.String()
}

func gaugeView(g *dashboard.Gauge) string {
	f := g.Frame
	color := lipgloss.Color(f.Color.Hex())

	offset := 0
	if f.Shake.Active {
		// one cell per 4px of shake
		offset = int(f.Shake.OffsetX / 4)
	}
	head := fmt.Sprintf("%-8s %s  %s", g.Name, lipgloss.NewStyle().Foreground(color).Bold(true).Render(f.StatusLabel), f.Phase.Label)
	if f.Flare.Active {
		head += "  " + lipgloss.NewStyle().Reverse(true).Render(" FLARE ")
	}

	line := strings.Repeat(" ", max(0, offset+1)) + bar(f.Motion.Value, color)
	return strings.Join([]string{
		head,
		line + fmt.Sprintf(" %5.1f", f.Motion.Value),
		mutedStyle.Render(f.Phase.Title + "  " + tickerLine(f)),
	}, "\n")
}

// bar renders value as a filled run of cells in the frame colour.
func bar(value float64, color lipgloss.Color) string {
	n := int(meter.Clamp(value) / meter.MaxScore * barWidth)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-n))
}

// tickerLine cycles through the phase ticker on the host clock.
func tickerLine(f meter.Frame) string {
	if len(f.Phase.Ticker) == 0 {
		return ""
	}
	i := int(f.Now/tickerPeriod) % len(f.Phase.Ticker)
	return f.Phase.Ticker[i]
}
