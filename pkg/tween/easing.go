package tween

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Easing maps linear progress in [0, 1] onto eased progress. Curves must
// return 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// FromTweenFunc adapts a gween curve, which eases begin..begin+change over a
// duration, to unit progress.
func FromTweenFunc(f ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(f(float32(t), 0, 1, 1))
	}
}

var (
	// Linear is constant speed.
	Linear = FromTweenFunc(ease.Linear)
	// EaseIn starts slow.
	EaseIn = FromTweenFunc(ease.InQuad)
	// EaseOut ends slow.
	EaseOut = FromTweenFunc(ease.OutQuad)
	// EaseInOut is quadratic at both ends.
	EaseInOut = FromTweenFunc(ease.InOutQuad)
	// CubicInOut is a steeper EaseInOut.
	CubicInOut = FromTweenFunc(ease.InOutCubic)
	// AccelerateDecelerate follows half a cosine wave.
	AccelerateDecelerate = FromTweenFunc(ease.InOutSine)
)

var easings = map[string]Easing{
	"linear":                Linear,
	"ease_in":               EaseIn,
	"ease_out":              EaseOut,
	"ease_in_out":           EaseInOut,
	"cubic_in_out":          CubicInOut,
	"accelerate_decelerate": AccelerateDecelerate,
}

// EasingNames lists the names accepted by ParseEasing.
var EasingNames = []string{
	"linear",
	"ease_in",
	"ease_out",
	"ease_in_out",
	"cubic_in_out",
	"accelerate_decelerate",
}

// ParseEasing looks up a curve by name. The empty name selects
// AccelerateDecelerate.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return AccelerateDecelerate, nil
	}
	if e, ok := easings[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("tween: unknown easing %q", name)
}
