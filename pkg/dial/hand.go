package dial

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
)

// Indices of the preset hands created by NewClock and driven by SetTime.
const (
	HandHour = iota
	HandMinute
	HandSecond
)

// Hand is one rotating pointer on the dial.
type Hand struct {
	// Value is the position in caller units (hours, minutes, ...). It is
	// never wrapped or clamped.
	Value float64
	// DegreesPerUnit converts Value into a rotation angle. Zero marks a
	// placeholder hand that cannot be grabbed.
	DegreesPerUnit float64
	// StartAngle is subtracted from the rotation when locating the tip for
	// hit-testing. It does not affect drawing.
	StartAngle float64
	// PivotX and PivotY locate the rotation center as fractions of the dial.
	PivotX, PivotY float64
	// Interval hints how often a host should re-sync the hand to wall time.
	Interval time.Duration
	// Sprite may be nil, in which case the hand is neither drawn nor hit.
	Sprite sprite.Sprite

	anim Tween
}

// HourHand returns the preset hour hand: one turn per 12 or 24 hours.
func HourHand(is24h bool) *Hand {
	hours := 12.0
	if is24h {
		hours = 24.0
	}
	return &Hand{
		DegreesPerUnit: 360.0 / hours,
		StartAngle:     90,
		PivotX:         0.5,
		PivotY:         0.5,
		Interval:       time.Hour,
	}
}

// MinuteHand returns the preset minute hand: one turn per 60 minutes.
func MinuteHand() *Hand {
	return &Hand{
		DegreesPerUnit: 360.0 / 60.0,
		StartAngle:     90,
		PivotX:         0.5,
		PivotY:         0.5,
		Interval:       time.Minute,
	}
}

// SecondHand returns the preset second hand: one turn per 60 seconds.
func SecondHand() *Hand {
	return &Hand{
		DegreesPerUnit: 360.0 / 60.0,
		StartAngle:     90,
		PivotX:         0.5,
		PivotY:         0.5,
		Interval:       time.Second,
	}
}

// Rotation is the angle in degrees applied when drawing the hand.
func (h *Hand) Rotation() float64 {
	return h.Value * h.DegreesPerUnit
}

// Pivot returns the rotation center in dial-local pixels.
func (h *Hand) Pivot(dialW, dialH float64) r2.Vec {
	return r2.Vec{X: dialW * h.PivotX, Y: dialH * h.PivotY}
}

// Tip returns the far end of the hand in dial-local pixels, half the sprite
// height away from the pivot.
func (h *Hand) Tip(dialW, dialH float64) r2.Vec {
	length := float64(sprite.Size(h.Sprite).Y) / 2
	theta := (h.Rotation() - h.StartAngle) * math.Pi / 180
	sin, cos := math.Sincos(theta)
	return r2.Add(h.Pivot(dialW, dialH), r2.Scale(length, r2.Vec{X: cos, Y: sin}))
}

// Interactive reports whether the hand can be hit-tested and dragged.
func (h *Hand) Interactive() bool {
	return h.Sprite != nil && h.DegreesPerUnit != 0
}

// Animating reports whether a value transition is in flight.
func (h *Hand) Animating() bool {
	return h.anim != nil
}

// period is the value span of one full turn, or 0 for placeholder hands.
func (h *Hand) period() float64 {
	if h.DegreesPerUnit == 0 {
		return 0
	}
	return 360 / h.DegreesPerUnit
}
