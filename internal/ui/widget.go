package ui

import (
	"image"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
	"github.com/OpenTraceLab/OpenClockView/pkg/tween"
)

// ClockWidget lays out and paints a dial.Clock and turns pointer input into
// hand drags. It must only be used from the window's event goroutine.
type ClockWidget struct {
	Clock  *dial.Clock
	Tweens *tween.Driver

	// Follow re-syncs the hands to wall time every Clock.SyncInterval.
	Follow bool
	// Animate makes wall-time syncs travel instead of jump.
	Animate bool
	// Now supplies wall time for Follow. Nil means time.Now.
	Now func() time.Time
	// OnInvalidate is called when the clock changes outside Layout, e.g.
	// from a menu callback. Usually the window's Invalidate.
	OnInvalidate func()
	// Logf receives per-gesture debug lines when set.
	Logf func(format string, args ...any)

	images   map[sprite.Sprite]paint.ImageOp
	inLayout bool
	nextSync time.Time

	primary   pointer.ID
	pressed   bool
	secondary map[pointer.ID]bool
}

// NewClockWidget wraps c. A nil driver disables animation.
func NewClockWidget(c *dial.Clock, d *tween.Driver) *ClockWidget {
	w := &ClockWidget{
		Clock:     c,
		Tweens:    d,
		images:    make(map[sprite.Sprite]paint.ImageOp),
		secondary: make(map[pointer.ID]bool),
	}
	w.attach()
	return w
}

// SetClock swaps the displayed clock, e.g. after loading a new face.
func (w *ClockWidget) SetClock(c *dial.Clock) {
	if w.Clock != nil {
		w.Clock.SetRedraw(nil)
		w.Clock.SetTweener(nil)
	}
	w.Clock = c
	w.images = make(map[sprite.Sprite]paint.ImageOp)
	w.pressed = false
	w.nextSync = time.Time{}
	w.attach()
	w.redraw()
}

func (w *ClockWidget) attach() {
	if w.Clock == nil {
		return
	}
	if w.Tweens != nil {
		w.Clock.SetTweener(w.Tweens)
	}
	w.Clock.SetRedraw(w.redraw)
}

func (w *ClockWidget) redraw() {
	if w.inLayout || w.OnInvalidate == nil {
		return
	}
	w.OnInvalidate()
}

// SpriteChanged drops the cached texture of s and tells the clock.
func (w *ClockWidget) SpriteChanged(s sprite.Sprite) {
	delete(w.images, s)
	if w.Clock != nil {
		w.Clock.SpriteChanged(s)
	}
}

// Layout handles input, advances animations and paints the clock.
func (w *ClockWidget) Layout(gtx layout.Context) layout.Dimensions {
	if w.Clock == nil {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	w.inLayout = true
	defer func() { w.inLayout = false }()

	c := w.Clock
	cs := gtx.Constraints
	vw, vh := c.Measure(float64(cs.Min.X), float64(cs.Min.Y), float64(cs.Max.X), float64(cs.Max.Y))
	size := cs.Constrain(image.Pt(int(math.Ceil(vw)), int(math.Ceil(vh))))
	c.SetViewSize(float64(size.X), float64(size.Y))

	w.handlePointer(gtx)
	w.sync(gtx)
	if w.Tweens != nil && w.Tweens.Advance(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, w)
	for _, d := range c.DrawList() {
		w.paintSprite(gtx, d)
	}

	return layout.Dimensions{Size: size}
}

func (w *ClockWidget) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		pe := dial.PointerEvent{Position: r2.Vec{X: float64(e.Position.X), Y: float64(e.Position.Y)}}
		switch e.Kind {
		case pointer.Press:
			if w.pressed && e.PointerID != w.primary {
				w.secondary[e.PointerID] = true
				pe.Kind = dial.PointerSecondaryDown
				break
			}
			w.pressed, w.primary = true, e.PointerID
			pe.Kind = dial.PointerDown
		case pointer.Drag:
			if !w.pressed || e.PointerID != w.primary {
				continue
			}
			pe.Kind = dial.PointerMove
		case pointer.Release:
			if w.secondary[e.PointerID] {
				delete(w.secondary, e.PointerID)
				pe.Kind = dial.PointerSecondaryUp
				break
			}
			w.pressed = false
			pe.Kind = dial.PointerUp
		case pointer.Cancel:
			w.pressed = false
			clear(w.secondary)
			pe.Kind = dial.PointerCancel
		default:
			continue
		}

		consumed := w.Clock.HandlePointer(pe)
		if consumed && pe.Kind == dial.PointerDown {
			gtx.Execute(pointer.GrabCmd{Tag: w, ID: e.PointerID})
		}
		if w.Logf != nil {
			w.Logf("[DEBUG] pointer %s at (%.0f, %.0f) consumed=%v hand=%d",
				pe.Kind, pe.Position.X, pe.Position.Y, consumed, w.Clock.Dragging())
		}
	}
}

// sync follows wall time while the user is not dragging.
func (w *ClockWidget) sync(gtx layout.Context) {
	if !w.Follow {
		return
	}
	interval := w.Clock.SyncInterval()
	if interval <= 0 {
		return
	}
	now := gtx.Now
	if now.IsZero() {
		now = time.Now()
	}
	if !now.Before(w.nextSync) && w.Clock.Dragging() < 0 {
		wall := now
		if w.Now != nil {
			wall = w.Now()
		}
		w.Clock.SetTime(wall, w.Animate)
		w.nextSync = now.Truncate(interval).Add(interval)
	}
	gtx.Execute(op.InvalidateCmd{At: w.nextSync})
}

func (w *ClockWidget) paintSprite(gtx layout.Context, d dial.DrawOp) {
	img, ok := w.images[d.Sprite]
	if !ok {
		img = paint.NewImageOp(d.Sprite.Image())
		w.images[d.Sprite] = img
	}
	sz := sprite.Size(d.Sprite)

	defer op.Affine(Affine(d.Transform)).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: sz}.Push(gtx.Ops).Pop()
	img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// Affine converts a dial matrix to Gio's transform.
func Affine(m dial.Matrix) f32.Affine2D {
	return f32.NewAffine2D(
		float32(m[0]), float32(m[2]), float32(m[4]),
		float32(m[1]), float32(m[3]), float32(m[5]),
	)
}
