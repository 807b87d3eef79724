package dial

import "math"

// TweenFuncs receives the progress of a scalar transition.
type TweenFuncs struct {
	// Update is called once per frame with the interpolated value.
	Update func(v float64)
	// Cancel is called when the tween is cancelled before finishing.
	Cancel func()
	// Complete is called after the final Update of a tween that ran out.
	Complete func()
}

// Tween is a handle to a running transition.
type Tween interface {
	// Cancel stops the tween and synchronously runs its Cancel callback.
	// Cancelling a finished tween is a no-op.
	Cancel()
}

// Tweener interpolates a scalar over time. The clock only supplies the
// endpoints and callbacks; timing and easing belong to the implementation.
// Start must not run any callback before it returns.
type Tweener interface {
	Start(from, to float64, fn TweenFuncs) Tween
}

// nearestEquivalent returns the value that draws the same rotation as
// target while lying closest to current, so animations take the short arc.
func nearestEquivalent(current, target, period float64) float64 {
	if period == 0 {
		return target
	}
	k := math.Round((current - target) / period)
	return target + k*period
}

// animate moves hand i to target through the tweener. It must only be called
// with the hand's previous animation already cancelled.
func (c *Clock) animate(i int, target float64) {
	h := c.hands[i]
	if h.Value == target {
		return
	}
	to := nearestEquivalent(h.Value, target, h.period())
	if to == h.Value {
		return
	}
	if c.tweener == nil || h.DegreesPerUnit == 0 {
		c.setValue(i, to)
		return
	}

	from := h.Value
	var t Tween
	t = c.tweener.Start(from, to, TweenFuncs{
		Update: func(v float64) {
			h.Value = v
			c.invalidate()
		},
		Cancel: func() {
			h.Value = from
			if h.anim == t {
				h.anim = nil
			}
			c.invalidate()
		},
		Complete: func() {
			if h.anim == t {
				h.anim = nil
			}
		},
	})
	h.anim = t
}

// cancelAnimation stops any transition on hand i, restoring its value.
func (c *Clock) cancelAnimation(i int) {
	h := c.hands[i]
	if h.anim == nil {
		return
	}
	t := h.anim
	h.anim = nil
	t.Cancel()
}
