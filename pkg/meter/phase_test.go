package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseOf_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  Phase
	}{
		{"零分", 0, PhaseSimmer},
		{"30 仍为酝酿", 30, PhaseSimmer},
		{"30 以上进入躁动", 30.0001, PhaseAgitation},
		{"70 仍为躁动", 70, PhaseAgitation},
		{"70 以上进入暴怒", 70.0001, PhaseRage},
		{"满分", 100, PhaseRage},
		{"越界上限", 250, PhaseRage},
		{"越界下限", -3, PhaseSimmer},
	}

	pc := DefaultPhaseClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhaseOf(tt.score))
			assert.Equal(t, tt.want, pc.Classify(tt.score).Phase)
		})
	}
}

func TestPhaseOf_Monotonic(t *testing.T) {
	prev := PhaseOf(0)
	for s := 0.0; s <= 100; s += 0.05 {
		p := PhaseOf(s)
		require.GreaterOrEqual(t, p.Rank(), prev.Rank(), "rank decreased at %v", s)
		prev = p
	}
}

func TestClassify_Copy(t *testing.T) {
	pc := DefaultPhaseClassifier()

	info := pc.Classify(80)
	assert.Equal(t, "RAGE", info.Label)
	assert.Equal(t, "COMPETITOR PANIC", info.Title)
	assert.Equal(t, []string{"AUTHORITY SCORE: MAX", "TRAFFIC HIJACKED"}, info.Ticker)

	for _, score := range []float64{0, 50, 100} {
		assert.NotEmpty(t, pc.Classify(score).Ticker, "ticker for %v", score)
	}
}

func TestNewPhaseClassifier_Validation(t *testing.T) {
	t.Run("缺少阶段", func(t *testing.T) {
		_, err := NewPhaseClassifier(map[Phase]PhaseCopy{
			PhaseSimmer: {Label: "S", Ticker: []string{"a"}},
		})
		assert.Error(t, err)
	})

	t.Run("字幕为空", func(t *testing.T) {
		texts := map[Phase]PhaseCopy{}
		for p, c := range DefaultPhaseCopy {
			texts[p] = c
		}
		texts[PhaseRage] = PhaseCopy{Label: "RAGE"}
		_, err := NewPhaseClassifier(texts)
		assert.Error(t, err)
	})

	t.Run("字幕被复制", func(t *testing.T) {
		ticker := []string{"one"}
		texts := map[Phase]PhaseCopy{
			PhaseSimmer:    {Ticker: ticker},
			PhaseAgitation: {Ticker: []string{"two"}},
			PhaseRage:      {Ticker: []string{"three"}},
		}
		pc, err := NewPhaseClassifier(texts)
		require.NoError(t, err)
		ticker[0] = "changed"
		assert.Equal(t, "one", pc.Classify(0).Ticker[0])
	})
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhaseSimmer, PhaseAgitation, PhaseRage} {
		got, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePhase(" rage ")
	require.NoError(t, err)
	assert.Equal(t, PhaseRage, got)

	_, err = ParsePhase("FURY")
	assert.Error(t, err)
}
