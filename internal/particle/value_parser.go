// Package particle parses the compact value notation used by particle styles
// in meter configuration files and evaluates the resulting curves.
package particle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrSyntax is wrapped by every parse error in this package.
var ErrSyntax = errors.New("particle: invalid value")

// Range is a closed interval of values.
// Written either as a fixed value ("1.5") or as "[min max]".
type Range struct {
	Min float64
	Max float64
}

// Fixed reports whether the range holds a single value.
func (r Range) Fixed() bool {
	return r.Min == r.Max
}

// Lerp maps t (0-1) into the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}

// Durations converts the range to durations, treating values as multiples of unit.
func (r Range) Durations(unit time.Duration) (min, max time.Duration) {
	return time.Duration(r.Min * float64(unit)), time.Duration(r.Max * float64(unit))
}

func (r Range) String() string {
	if r.Fixed() {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// ParseRange parses a range value.
// Supported formats:
//   - Fixed value: "1500" → {1500, 1500}
//   - Range: "[0.7 0.9]" → {0.7, 0.9}
//   - Single bracketed value: "[3]" → {3, 3}
//
// Min must not exceed max.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrSyntax)
	}

	open := strings.HasPrefix(s, "[")
	closed := strings.HasSuffix(s, "]")
	if open != closed {
		return Range{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrSyntax, s)
	}

	if !open {
		v, err := parseFloat(s)
		if err != nil {
			return Range{}, err
		}
		return Range{Min: v, Max: v}, nil
	}

	parts := strings.Fields(s[1 : len(s)-1])
	switch len(parts) {
	case 1:
		v, err := parseFloat(parts[0])
		if err != nil {
			return Range{}, err
		}
		return Range{Min: v, Max: v}, nil
	case 2:
		lo, err := parseFloat(parts[0])
		if err != nil {
			return Range{}, err
		}
		hi, err := parseFloat(parts[1])
		if err != nil {
			return Range{}, err
		}
		if lo > hi {
			return Range{}, fmt.Errorf("%w: range %q has min > max", ErrSyntax, s)
		}
		return Range{Min: lo, Max: hi}, nil
	}
	return Range{}, fmt.Errorf("%w: range %q needs one or two values", ErrSyntax, s)
}

// Interpolation selects how a curve blends between keyframes.
type Interpolation string

const (
	Linear        Interpolation = "Linear"
	EaseIn        Interpolation = "EaseIn"
	EaseOut       Interpolation = "EaseOut"
	FastInOutWeak Interpolation = "FastInOutWeak"
)

var interpolations = []Interpolation{Linear, EaseIn, EaseOut, FastInOutWeak}

// Keyframe represents a single keyframe in an animation curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64
}

// Curve is a keyframed value over a particle's normalized lifetime.
type Curve struct {
	Keyframes     []Keyframe
	Interpolation Interpolation
}

// ParseCurve parses a keyframe curve.
// Supported formats:
//   - Keyframes: "0,0 .3,1 1,0" → time,value pairs, times in 0-1 and non-decreasing
//   - With interpolation: "EaseOut 0,1 1,0" (keyword may appear anywhere)
//   - Fixed value: ".8" → a constant curve
//
// An empty string yields an empty curve, which evaluates to 1.
func ParseCurve(s string) (Curve, error) {
	var c Curve
	for _, f := range strings.Fields(s) {
		if kw, ok := lookupInterpolation(f); ok {
			if c.Interpolation != "" {
				return Curve{}, fmt.Errorf("%w: curve %q has more than one interpolation", ErrSyntax, s)
			}
			c.Interpolation = kw
			continue
		}

		t, v, hasTime := strings.Cut(f, ",")
		if !hasTime {
			if len(c.Keyframes) > 0 {
				return Curve{}, fmt.Errorf("%w: curve %q mixes fixed values and keyframes", ErrSyntax, s)
			}
			val, err := parseFloat(f)
			if err != nil {
				return Curve{}, err
			}
			c.Keyframes = append(c.Keyframes, Keyframe{Time: 0, Value: val})
			continue
		}

		kt, err := parseFloat(t)
		if err != nil {
			return Curve{}, err
		}
		kv, err := parseFloat(v)
		if err != nil {
			return Curve{}, err
		}
		if kt < 0 || kt > 1 {
			return Curve{}, fmt.Errorf("%w: keyframe time %v outside [0,1]", ErrSyntax, kt)
		}
		if n := len(c.Keyframes); n > 0 && kt < c.Keyframes[n-1].Time {
			return Curve{}, fmt.Errorf("%w: keyframe times in %q must not decrease", ErrSyntax, s)
		}
		c.Keyframes = append(c.Keyframes, Keyframe{Time: kt, Value: kv})
	}
	return c, nil
}

func lookupInterpolation(s string) (Interpolation, bool) {
	for _, kw := range interpolations {
		if strings.EqualFold(s, string(kw)) {
			return kw, true
		}
	}
	return "", false
}

// At calculates the interpolated value at normalized time t.
// Values before the first keyframe hold the first value; values after the
// last keyframe hold the last value.
func (c Curve) At(t float64) float64 {
	kf := c.Keyframes
	switch len(kf) {
	case 0:
		return 1
	case 1:
		return kf[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t < kf[0].Time {
		return kf[0].Value
	}

	for i := 0; i < len(kf)-1; i++ {
		k0, k1 := kf[i], kf[i+1]
		if t < k0.Time || t > k1.Time {
			continue
		}
		span := k1.Time - k0.Time
		if span <= 0 {
			return k1.Value
		}
		ratio := ease(c.Interpolation, (t-k0.Time)/span)
		return k0.Value + ratio*(k1.Value-k0.Value)
	}

	return kf[len(kf)-1].Value
}

func ease(mode Interpolation, r float64) float64 {
	switch mode {
	case EaseIn:
		return r * r
	case EaseOut:
		return 1 - (1-r)*(1-r)
	case FastInOutWeak:
		return r * r * (3 - 2*r)
	}
	return r
}

// LoopProgress returns how far (0-1) a looping animation of the given period
// is at now, after an initial delay. Before the delay it reports 0.
func LoopProgress(now, delay, period time.Duration) float64 {
	if period <= 0 || now < delay {
		return 0
	}
	return float64((now-delay)%period) / float64(period)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrSyntax, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrSyntax, s)
	}
	return v, nil
}
