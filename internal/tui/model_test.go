package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/dashboard"
	"github.com/gonewx/angrymeter/pkg/meter"
)

func newModel(t *testing.T, updates <-chan config.Update) Model {
	t.Helper()
	cat, err := config.DefaultMeterConfig().Build()
	require.NoError(t, err)
	d, err := dashboard.New(cat, 0, nil, nil)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return New(d, updates)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TickStepsDashboard(t *testing.T) {
	m := newModel(t, nil)

	next, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd, "tick must reschedule itself")
	assert.Equal(t, dashboard.TickInterval, next.(Model).dash.Now())
}

func TestModel_Keys(t *testing.T) {
	m := newModel(t, nil)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want float64
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, 10},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, 11},
		{"left", runes("h"), 10},
		{"digit", runes("7"), 70},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, 60},
		{"reset", runes("r"), 0},
		{"clamped", tea.KeyMsg{Type: tea.KeyLeft}, 0},
	}
	for _, tt := range tests {
		_, cmd := m.Update(tt.msg)
		assert.Nil(t, cmd, tt.name)
		assert.Equal(t, tt.want, m.dash.Score(), tt.name)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ConfigUpdates(t *testing.T) {
	ch := make(chan config.Update, 1)
	m := newModel(t, ch)

	ch <- config.Update{Err: errors.New("bad yaml")}
	msg := m.waitForUpdate()()
	next, cmd := m.Update(msg)
	require.NotNil(t, cmd, "keeps listening after a rejected config")
	got := next.(Model)
	assert.True(t, got.failed)
	assert.Contains(t, got.status, "bad yaml")
	assert.Len(t, got.dash.Gauges(), 3)

	cfg := config.DefaultMeterConfig()
	cfg.Variants = cfg.Variants[1:]
	ch <- config.Update{Config: cfg}
	next, _ = got.Update(got.waitForUpdate()())
	got = next.(Model)
	assert.False(t, got.failed)
	assert.Equal(t, "config reloaded", got.status)
	assert.Len(t, got.dash.Gauges(), 2)

	close(ch)
	assert.Nil(t, got.waitForUpdate()(), "closed channel ends the chain")
	assert.Nil(t, New(got.dash, nil).waitForUpdate())
}

func TestModel_View(t *testing.T) {
	m := newModel(t, nil)
	m.dash.SetScore(80)
	m.dash.Step(dashboard.TickInterval)

	view := m.View()
	for _, name := range []string{"turbine", "silo", "orbit"} {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "RAGE")
	assert.Contains(t, view, "FLARE")
}

func TestBar(t *testing.T) {
	b := bar(50, "#FFFFFF")
	assert.Equal(t, barWidth/2, strings.Count(b, "█"))
	assert.Equal(t, barWidth/2, strings.Count(b, "░"))
	assert.Equal(t, barWidth, strings.Count(bar(150, "#FFFFFF"), "█"))
}

func TestTickerLine(t *testing.T) {
	f := meter.Frame{Phase: meter.PhaseInfo{Ticker: []string{"a", "b"}}}
	assert.Equal(t, "a", tickerLine(f))
	f.Now = tickerPeriod
	assert.Equal(t, "b", tickerLine(f))
	f.Now = 2 * tickerPeriod
	assert.Equal(t, "a", tickerLine(f))
	assert.Empty(t, tickerLine(meter.Frame{}))
}
