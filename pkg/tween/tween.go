// Package tween drives scalar transitions for the clock's value animator.
// A Driver is advanced explicitly by the host's frame loop, so every
// callback runs on the goroutine that calls Advance.
package tween

import (
	"time"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
)

// DefaultDuration is used when a Driver is created with a non-positive
// duration.
const DefaultDuration = 300 * time.Millisecond

// Driver runs any number of concurrent tweens sharing one duration and
// easing curve. It implements dial.Tweener.
type Driver struct {
	duration time.Duration
	easing   Easing
	active   []*Tween
}

var _ dial.Tweener = (*Driver)(nil)

// NewDriver returns a driver. A nil easing means AccelerateDecelerate.
func NewDriver(d time.Duration, easing Easing) *Driver {
	if d <= 0 {
		d = DefaultDuration
	}
	if easing == nil {
		easing = AccelerateDecelerate
	}
	return &Driver{duration: d, easing: easing}
}

// Duration returns the length of each tween.
func (d *Driver) Duration() time.Duration {
	return d.duration
}

// Tween is one running transition.
type Tween struct {
	d        *Driver
	from, to float64
	fn       dial.TweenFuncs

	start   time.Time
	started bool
	done    bool
}

// Start registers a tween from -> to. Its clock starts at the next Advance,
// which also delivers the first Update.
func (d *Driver) Start(from, to float64, fn dial.TweenFuncs) dial.Tween {
	t := &Tween{d: d, from: from, to: to, fn: fn}
	d.active = append(d.active, t)
	return t
}

// Running returns the number of unfinished tweens.
func (d *Driver) Running() int {
	return len(d.active)
}

// Advance moves every tween to time now and reports whether any is still
// running, in which case the host should schedule another frame.
func (d *Driver) Advance(now time.Time) bool {
	if len(d.active) == 0 {
		return false
	}
	// Callbacks may start or cancel tweens.
	batch := append([]*Tween(nil), d.active...)
	for _, t := range batch {
		if t.done {
			continue
		}
		if !t.started {
			t.start, t.started = now, true
		}
		t.step(now.Sub(t.start))
	}
	d.compact()
	return len(d.active) > 0
}

func (d *Driver) compact() {
	live := d.active[:0]
	for _, t := range d.active {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = live
}

func (t *Tween) step(elapsed time.Duration) {
	p := float64(elapsed) / float64(t.d.duration)
	if p >= 1 {
		t.done = true
		t.update(t.to)
		if t.fn.Complete != nil {
			t.fn.Complete()
		}
		return
	}
	if p < 0 {
		p = 0
	}
	t.update(t.from + (t.to-t.from)*t.d.easing(p))
}

func (t *Tween) update(v float64) {
	if t.fn.Update != nil {
		t.fn.Update(v)
	}
}

// Cancel stops the tween and runs its Cancel callback. Cancelling a tween
// that already finished does nothing.
func (t *Tween) Cancel() {
	if t.done {
		return
	}
	t.done = true
	t.d.compact()
	if t.fn.Cancel != nil {
		t.fn.Cancel()
	}
}

// Done reports whether the tween finished or was cancelled.
func (t *Tween) Done() bool {
	return t.done
}
