// Package dial implements an analog clock face: a dial sprite overlaid with
// rotating hand sprites, the fit transform into view space, hit-testing of
// hand tips, drag-to-set and shortest-arc value animation.
//
// A Clock is not safe for concurrent use. All mutation, including tween
// callbacks and listener notifications, is expected on one goroutine.
package dial

import (
	"fmt"
	"time"

	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
)

// Insets is view padding in pixels.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Listener receives drag notifications. Nil funcs are skipped; a nil Begin
// permits every drag. Callbacks must not change the hand being dragged.
type Listener struct {
	Begin   func(index int) bool
	Changed func(index int, value, old float64)
	End     func(index int)
}

// Clock owns a dial, its hands and the cached fit transform.
type Clock struct {
	dial  sprite.Sprite
	hands []*Hand

	scaleMode ScaleMode
	custom    Matrix
	padding   Insets
	viewW     float64
	viewH     float64

	matrix    Matrix
	dirty     bool
	fitPasses int

	is24h            bool
	drawReversed     bool
	adjustViewBounds bool

	drag     Drag
	listener Listener
	tweener  Tweener
	onRedraw func()
}

// NewClock creates a clock with the given dial and the three preset hands
// (hour, minute, second) without sprites.
func NewClock(dialSprite sprite.Sprite) *Clock {
	return NewClockWithHands(dialSprite, HourHand(false), MinuteHand(), SecondHand())
}

// NewClockWithHands creates a clock with an explicit hand list. The clock
// starts in ScaleFitCenter and draws hands in reverse order.
func NewClockWithHands(dialSprite sprite.Sprite, hands ...*Hand) *Clock {
	c := &Clock{
		dial:         dialSprite,
		hands:        hands,
		scaleMode:    ScaleFitCenter,
		custom:       Identity(),
		matrix:       Identity(),
		dirty:        true,
		drawReversed: true,
	}
	c.drag.index = -1
	return c
}

// Dial returns the dial sprite, which may be nil.
func (c *Clock) Dial() sprite.Sprite {
	return c.dial
}

// SetDial replaces the dial sprite and invalidates the fit transform.
func (c *Clock) SetDial(s sprite.Sprite) {
	if c.dial == s {
		return
	}
	c.dial = s
	c.dirty = true
	c.invalidate()
}

// DialSize returns the intrinsic dial size, zero when there is no dial.
func (c *Clock) DialSize() (w, h float64) {
	sz := sprite.Size(c.dial)
	return float64(sz.X), float64(sz.Y)
}

// SpriteChanged must be called when the pixels or size of a sprite used by
// the clock change in place.
func (c *Clock) SpriteChanged(s sprite.Sprite) {
	if s == nil {
		return
	}
	if s == c.dial {
		c.dirty = true
		c.invalidate()
		return
	}
	for _, h := range c.hands {
		if h.Sprite == s {
			c.invalidate()
			return
		}
	}
}

// NumHands returns the number of hand slots.
func (c *Clock) NumHands() int {
	return len(c.hands)
}

// SetNumHands grows or shrinks the hand list. Existing hands keep their index
// and state; new slots are zero placeholder hands. Removing the dragged hand
// ends the drag and reports it to Listener.End.
func (c *Clock) SetNumHands(n int) {
	if n < 0 {
		panic(fmt.Sprintf("dial: negative hand count %d", n))
	}
	for i := n; i < len(c.hands); i++ {
		c.cancelAnimation(i)
	}
	if c.drag.Index() >= n {
		if i := c.drag.End(); i >= 0 && c.listener.End != nil {
			c.listener.End(i)
		}
	}
	hands := make([]*Hand, n)
	copy(hands, c.hands)
	for i := len(c.hands); i < n; i++ {
		hands[i] = &Hand{}
	}
	c.hands = hands
	c.invalidate()
}

// Hand returns hand i. It panics if i is out of range.
func (c *Clock) Hand(i int) *Hand {
	return c.hands[i]
}

// Hands returns the hand list. The slice is owned by the clock.
func (c *Clock) Hands() []*Hand {
	return c.hands
}

// SetHandSprite replaces the sprite of hand i.
func (c *Clock) SetHandSprite(i int, s sprite.Sprite) {
	h := c.hands[i]
	if h.Sprite == s {
		return
	}
	h.Sprite = s
	c.invalidate()
}

// HandValue returns the value of hand i.
func (c *Clock) HandValue(i int) float64 {
	return c.hands[i].Value
}

// SetHandValue sets hand i to value. With animate the hand travels there
// along the shorter arc, possibly ending on an equivalent value a whole turn
// away. Any transition in flight is cancelled first, restoring its start.
func (c *Clock) SetHandValue(i int, value float64, animate bool) {
	c.cancelAnimation(i)
	if animate {
		c.animate(i, value)
		return
	}
	c.setValue(i, value)
}

// AnimateTo is SetHandValue with animation.
func (c *Clock) AnimateTo(i int, target float64) {
	c.SetHandValue(i, target, true)
}

// SetHour animates the hour hand.
func (c *Clock) SetHour(v float64) { c.SetHandValue(HandHour, v, true) }

// SetMinute animates the minute hand.
func (c *Clock) SetMinute(v float64) { c.SetHandValue(HandMinute, v, true) }

// SetSecond animates the second hand.
func (c *Clock) SetSecond(v float64) { c.SetHandValue(HandSecond, v, true) }

// SetTime drives the preset hands from t. Clocks with fewer than three hands
// only update the hands they have.
func (c *Clock) SetTime(t time.Time, animate bool) {
	hour := t.Hour()
	if !c.is24h {
		hour %= 12
	}
	values := [...]float64{float64(hour), float64(t.Minute()), float64(t.Second())}
	for i, v := range values {
		if i >= len(c.hands) {
			break
		}
		c.SetHandValue(i, v, animate)
	}
}

// SyncInterval returns the shortest positive hand interval, or zero when no
// hand asks to follow wall time.
func (c *Clock) SyncInterval() time.Duration {
	var d time.Duration
	for _, h := range c.hands {
		if h.Interval > 0 && (d == 0 || h.Interval < d) {
			d = h.Interval
		}
	}
	return d
}

func (c *Clock) setValue(i int, v float64) {
	h := c.hands[i]
	if h.Value == v {
		return
	}
	h.Value = v
	c.invalidate()
}

// Is24Hour reports whether SetTime uses a 24 hour dial.
func (c *Clock) Is24Hour() bool {
	return c.is24h
}

// SetIs24Hour switches SetTime between 12 and 24 hour values. The hour hand's
// DegreesPerUnit is left to the caller.
func (c *Clock) SetIs24Hour(v bool) {
	c.is24h = v
}

// DrawReversed reports whether hands are painted last-to-first.
func (c *Clock) DrawReversed() bool {
	return c.drawReversed
}

// SetDrawReversed chooses the hand paint order. Reversed (the default) paints
// the last hand first so hand 0 ends up on top.
func (c *Clock) SetDrawReversed(v bool) {
	if c.drawReversed == v {
		return
	}
	c.drawReversed = v
	c.invalidate()
}

// SetListener installs drag notifications.
func (c *Clock) SetListener(l Listener) {
	c.listener = l
}

// SetTweener installs the animation service. Without one, animated value
// changes jump straight to their target.
func (c *Clock) SetTweener(t Tweener) {
	c.tweener = t
}

// SetRedraw installs the callback used to request a new frame.
func (c *Clock) SetRedraw(fn func()) {
	c.onRedraw = fn
}

func (c *Clock) invalidate() {
	if c.onRedraw != nil {
		c.onRedraw()
	}
}
