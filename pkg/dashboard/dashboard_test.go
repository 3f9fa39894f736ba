package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gonewx/angrymeter/pkg/config"
	"github.com/gonewx/angrymeter/pkg/meter"
)

type recordingCues struct {
	played []meter.Phase
}

func (r *recordingCues) Play(to meter.Phase) {
	r.played = append(r.played, to)
}

func defaultCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	cat, err := config.DefaultMeterConfig().Build()
	require.NoError(t, err)
	return cat
}

func TestDashboard_Step(t *testing.T) {
	d, err := New(defaultCatalog(t), 0, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	require.Len(t, d.Gauges(), 3)
	assert.Equal(t, "turbine", d.Gauges()[0].Name)

	for i := 0; i < 3; i++ {
		d.Step(TickInterval)
	}
	assert.Equal(t, 3*TickInterval, d.Now())
	for _, g := range d.Gauges() {
		assert.Equal(t, d.Now(), g.Frame.Now, "%s 每个 tick 都应更新", g.Name)
		assert.True(t, g.Meter.Running())
	}
}

func TestDashboard_EscalationCue(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cues := &recordingCues{}
	d, err := New(defaultCatalog(t), 0, cues, zap.New(core))
	require.NoError(t, err)
	defer d.Close()

	d.Step(TickInterval)
	assert.Empty(t, cues.played, "初始分数不触发升级")

	d.SetScore(80)
	for i := 0; i < 30; i++ {
		d.Step(TickInterval)
	}
	assert.Equal(t, []meter.Phase{meter.PhaseRage}, cues.played, "三块表盘同时升级只播放一次")
	assert.Equal(t, 1, logs.FilterMessage("phase escalated").Len())

	d.SetScore(10)
	d.Step(TickInterval)
	assert.Len(t, cues.played, 1, "降级静默")

	d.SetScore(50)
	d.Step(TickInterval)
	assert.Equal(t, []meter.Phase{meter.PhaseRage, meter.PhaseAgitation}, cues.played)
}

func TestDashboard_InitialScoreBaseline(t *testing.T) {
	cues := &recordingCues{}
	d, err := New(defaultCatalog(t), 95, cues, nil)
	require.NoError(t, err)
	defer d.Close()

	d.Step(TickInterval)
	assert.Empty(t, cues.played)
	assert.Equal(t, meter.PhaseRage, d.Gauges()[0].Frame.Phase.Phase)
}

func TestDashboard_SetScoreClamps(t *testing.T) {
	d, err := New(defaultCatalog(t), 0, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	d.SetScore(250)
	assert.Equal(t, meter.MaxScore, d.Score())
	for _, g := range d.Gauges() {
		assert.Equal(t, meter.MaxScore, g.Meter.Score())
	}
}

func TestDashboard_Apply(t *testing.T) {
	d, err := New(defaultCatalog(t), 0, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	d.SetScore(40)
	d.Step(TickInterval)
	old := d.Gauges()

	t.Run("无效配置保留旧表盘", func(t *testing.T) {
		bad := errors.New("boom")
		err := d.Apply(config.Update{Err: bad})
		assert.ErrorIs(t, err, bad)
		assert.Equal(t, old, d.Gauges())
		for _, g := range old {
			assert.False(t, g.Meter.Disposed())
		}
	})

	t.Run("新配置按当前分数重建", func(t *testing.T) {
		cfg := config.DefaultMeterConfig()
		cfg.Variants = cfg.Variants[:1]

		require.NoError(t, d.Apply(config.Update{Config: cfg}))
		require.Len(t, d.Gauges(), 1)
		assert.Equal(t, 40.0, d.Gauges()[0].Meter.Score())
		for _, g := range old {
			assert.True(t, g.Meter.Disposed(), "%s 旧表盘应被销毁", g.Name)
		}

		d.Step(TickInterval)
		assert.Equal(t, d.Now(), d.Gauges()[0].Frame.Now)
		assert.False(t, d.Gauges()[0].Frame.Transition.Occurred, "重建不触发升级")
	})
}

func TestDashboard_Close(t *testing.T) {
	d, err := New(defaultCatalog(t), 0, nil, nil)
	require.NoError(t, err)

	d.Close()
	for _, g := range d.Gauges() {
		assert.True(t, g.Meter.Disposed())
	}
	assert.Zero(t, d.queue.Pending())
}

func TestNew_EmptyCatalog(t *testing.T) {
	_, err := New(&config.Catalog{}, 0, nil, nil)
	assert.Error(t, err)
}
