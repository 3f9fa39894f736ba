package particle

import (
	"fmt"
	"time"

	"github.com/gonewx/angrymeter/pkg/meter"
)

// DefaultAlpha fades a particle in quickly and out slowly.
const DefaultAlpha = "0,0 .25,1 1,0"

// Style is a compiled EmitterConfig.
type Style struct {
	meter.ParticleStyle
	Alpha Curve
}

// Compile parses an emitter configuration into a particle style.
//
// Parameters:
//   - cfg: the emitter configuration, usually decoded from meter.yaml
//
// Returns:
//   - Style: the meter particle style plus its alpha curve
//   - error: any error wrapping ErrSyntax, or an unknown kind
//
// Example usage:
//
//	style, err := particle.Compile(particle.EmitterConfig{Kind: "mist", Duration: "[1 2]"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(style.MinDuration, style.MaxDuration) // 1s 2s
func Compile(cfg EmitterConfig) (Style, error) {
	kind, err := meter.ParseParticleKind(cfg.Kind)
	if err != nil {
		return Style{}, err
	}

	r, err := ParseRange(cfg.Duration)
	if err != nil {
		return Style{}, fmt.Errorf("%s duration: %w", cfg.Kind, err)
	}
	if r.Min <= 0 {
		return Style{}, fmt.Errorf("%s duration: %w: must be positive, got %s", cfg.Kind, ErrSyntax, r)
	}
	lo, hi := r.Durations(time.Second)

	alpha := cfg.Alpha
	if alpha == "" {
		alpha = DefaultAlpha
	}
	curve, err := ParseCurve(alpha)
	if err != nil {
		return Style{}, fmt.Errorf("%s alpha: %w", cfg.Kind, err)
	}

	if cfg.Spread < 0 || cfg.RadiusJitter < 0 {
		return Style{}, fmt.Errorf("%s: %w: spread and radiusJitter must not be negative", cfg.Kind, ErrSyntax)
	}

	return Style{
		ParticleStyle: meter.ParticleStyle{
			Kind:         kind,
			MinDuration:  lo,
			MaxDuration:  hi,
			Spread:       cfg.Spread,
			RadiusJitter: cfg.RadiusJitter,
		},
		Alpha: curve,
	}, nil
}

// AlphaAt returns a particle's opacity at now, looping over its lifetime.
func (s Style) AlphaAt(p meter.Particle, now time.Duration) float64 {
	return s.Alpha.At(LoopProgress(now, p.StartDelay, p.Duration))
}
