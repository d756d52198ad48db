package anim

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Ease selects the curve a timeline uses to map elapsed time to progress.
type Ease int

const (
	Linear Ease = iota
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InBack
	OutBack
	InOutBack
	OutBounce
	Spring
)

var easeNames = [...]string{
	"linear",
	"in-quad",
	"out-quad",
	"in-out-quad",
	"in-cubic",
	"out-cubic",
	"in-out-cubic",
	"in-back",
	"out-back",
	"in-out-back",
	"out-bounce",
	"spring",
}

func (e Ease) String() string {
	if e < Linear || e > Spring {
		return fmt.Sprintf("ease(%d)", int(e))
	}
	return easeNames[e]
}

// ParseEase accepts names such as "out-back", "OutBack" or "out_back".
func ParseEase(s string) (Ease, error) {
	want := normalizeEaseName(s)
	for i, name := range easeNames {
		if normalizeEaseName(name) == want {
			return Ease(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown ease %q", s)
}

func normalizeEaseName(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// MarshalText implements encoding.TextMarshaler.
func (e Ease) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Ease) UnmarshalText(text []byte) error {
	parsed, err := ParseEase(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

const (
	backOvershoot      = 1.70158
	backOvershootInOut = backOvershoot * 1.525
)

// Apply maps t in [0,1] to eased progress. Apply(0) is 0 and Apply(1) is 1
// for every curve; back and spring curves overshoot in between.
func (e Ease) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case InQuad:
		return t * t
	case OutQuad:
		return 1 - (1-t)*(1-t)
	case InOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	case InCubic:
		return t * t * t
	case OutCubic:
		return 1 - math.Pow(1-t, 3)
	case InOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	case InBack:
		return (backOvershoot+1)*t*t*t - backOvershoot*t*t
	case OutBack:
		u := t - 1
		return 1 + (backOvershoot+1)*u*u*u + backOvershoot*u*u
	case InOutBack:
		if t < 0.5 {
			u := 2 * t
			return u * u * ((backOvershootInOut+1)*u - backOvershootInOut) / 2
		}
		u := 2*t - 2
		return (u*u*((backOvershootInOut+1)*u+backOvershootInOut) + 2) / 2
	case OutBounce:
		return outBounce(t)
	case Spring:
		return sampleCurve(springCurve, t)
	default:
		return t
	}
}

func outBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

const (
	springSamples   = 120
	springFrequency = 14.0
	springDamping   = 0.45
)

// springCurve is a damped spring from 0 to 1 sampled over normalised time.
var springCurve = buildSpringCurve(springSamples)

func buildSpringCurve(samples int) []float64 {
	spring := harmonica.NewSpring(1/float64(samples), springFrequency, springDamping)
	curve := make([]float64, samples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= samples; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		curve[i] = pos
	}
	curve[samples] = 1
	return curve
}

func sampleCurve(curve []float64, t float64) float64 {
	last := len(curve) - 1
	x := t * float64(last)
	i := int(x)
	if i >= last {
		return curve[last]
	}
	frac := x - float64(i)
	return curve[i] + (curve[i+1]-curve[i])*frac
}
