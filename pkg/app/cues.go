package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	toneaudio "github.com/gonewx/angrymeter/internal/audio"
	"github.com/gonewx/angrymeter/pkg/meter"
)

// escalationTones 各阶段升级提示音
var escalationTones = map[meter.Phase]toneaudio.Tone{
	meter.PhaseAgitation: {StartHz: 330, EndHz: 550, Duration: 250 * time.Millisecond, Volume: 0.35},
	meter.PhaseRage:      {StartHz: 220, EndHz: 880, Duration: 400 * time.Millisecond, Volume: 0.5},
}

// renderCues 预先合成全部提示音
func renderCues(sampleRate int) (map[meter.Phase][]byte, error) {
	cues := make(map[meter.Phase][]byte, len(escalationTones))
	for phase, tone := range escalationTones {
		s, err := toneaudio.Synthesize(tone, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%s cue: %w", phase, err)
		}
		cues[phase] = s.Bytes()
	}
	return cues, nil
}

// tonePlayer 通过 ebiten 音频上下文播放合成提示音
type tonePlayer struct {
	ctx  *audio.Context
	cues map[meter.Phase][]byte
}

func newTonePlayer(ctx *audio.Context) (*tonePlayer, error) {
	cues, err := renderCues(ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	return &tonePlayer{ctx: ctx, cues: cues}, nil
}

// Play 实现 dashboard.CuePlayer
func (p *tonePlayer) Play(to meter.Phase) {
	pcm, ok := p.cues[to]
	if !ok {
		return
	}
	p.ctx.NewPlayerFromBytes(pcm).Play()
}
