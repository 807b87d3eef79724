package dial

import "gonum.org/v1/gonum/spatial/r2"

// ScaleMode returns the active fit policy.
func (c *Clock) ScaleMode() ScaleMode {
	return c.scaleMode
}

// SetScaleMode changes the fit policy.
func (c *Clock) SetScaleMode(mode ScaleMode) {
	if c.scaleMode == mode {
		return
	}
	c.scaleMode = mode
	c.dirty = true
	c.invalidate()
}

// ImageMatrix returns the custom matrix used by ScaleMatrix.
func (c *Clock) ImageMatrix() Matrix {
	return c.custom
}

// SetImageMatrix sets the custom matrix. It only takes effect in ScaleMatrix
// mode but is kept across mode changes.
func (c *Clock) SetImageMatrix(m Matrix) {
	if c.custom == m {
		return
	}
	c.custom = m
	if c.scaleMode == ScaleMatrix {
		c.dirty = true
		c.invalidate()
	}
}

// Padding returns the view padding.
func (c *Clock) Padding() Insets {
	return c.padding
}

// SetPadding changes the view padding.
func (c *Clock) SetPadding(p Insets) {
	if c.padding == p {
		return
	}
	c.padding = p
	c.dirty = true
	c.invalidate()
}

// ViewSize returns the last size passed to SetViewSize.
func (c *Clock) ViewSize() (w, h float64) {
	return c.viewW, c.viewH
}

// SetViewSize records the widget size in pixels, padding included.
func (c *Clock) SetViewSize(w, h float64) {
	if c.viewW == w && c.viewH == h {
		return
	}
	c.viewW, c.viewH = w, h
	c.dirty = true
	c.invalidate()
}

// AdjustViewBounds reports whether Measure keeps the dial aspect ratio.
func (c *Clock) AdjustViewBounds() bool {
	return c.adjustViewBounds
}

// SetAdjustViewBounds makes Measure follow the dial aspect ratio when only
// one axis is fixed. Enabling it switches to ScaleFitCenter.
func (c *Clock) SetAdjustViewBounds(v bool) {
	if c.adjustViewBounds == v {
		return
	}
	c.adjustViewBounds = v
	if v {
		c.SetScaleMode(ScaleFitCenter)
	}
}

// Matrix returns the dial-to-view transform, recomputing it only after a
// change to the scale mode, view size, dial, padding or custom matrix.
func (c *Clock) Matrix() Matrix {
	if c.dirty {
		dw, dh := c.DialSize()
		cw := c.viewW - c.padding.Left - c.padding.Right
		ch := c.viewH - c.padding.Top - c.padding.Bottom
		c.matrix = ComputeFitTransform(c.scaleMode, c.custom, cw, ch, dw, dh, c.padding.Left, c.padding.Top)
		c.dirty = false
		c.fitPasses++
	}
	return c.matrix
}

// MinSize is the dial size plus padding.
func (c *Clock) MinSize() (w, h float64) {
	dw, dh := c.DialSize()
	return dw + c.padding.Left + c.padding.Right, dh + c.padding.Top + c.padding.Bottom
}

// Measure picks the widget size within [minW, maxW] x [minH, maxH]. An axis
// is fixed when its min equals its max; otherwise the axis takes MinSize,
// clamped. With AdjustViewBounds, a free axis next to a fixed one follows
// the dial aspect ratio instead.
func (c *Clock) Measure(minW, minH, maxW, maxH float64) (w, h float64) {
	prefW, prefH := c.MinSize()
	w = clamp(prefW, minW, maxW)
	h = clamp(prefH, minH, maxH)

	dw, dh := c.DialSize()
	if !c.adjustViewBounds || dw <= 0 || dh <= 0 {
		return w, h
	}
	p := c.padding
	switch fixedW, fixedH := minW == maxW, minH == maxH; {
	case fixedW && !fixedH:
		h = clamp((w-p.Left-p.Right)*dh/dw+p.Top+p.Bottom, minH, maxH)
	case fixedH && !fixedW:
		w = clamp((h-p.Top-p.Bottom)*dw/dh+p.Left+p.Right, minW, maxW)
	}
	return w, h
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// HitTest returns the hand whose tip is nearest to the view point p, or -1.
// Nothing is hit before the view has a content area.
func (c *Clock) HitTest(p r2.Vec) int {
	if c.dial == nil {
		return -1
	}
	if c.viewW-c.padding.Left-c.padding.Right <= 0 || c.viewH-c.padding.Top-c.padding.Bottom <= 0 {
		return -1
	}
	dw, dh := c.DialSize()
	return FindHand(p, c.hands, c.Matrix(), dw, dh)
}

// Dragging returns the hand being dragged, or -1.
func (c *Clock) Dragging() int {
	return c.drag.Index()
}

// HandlePointer feeds one gesture event to the drag controller and reports
// whether the clock consumed it.
func (c *Clock) HandlePointer(e PointerEvent) bool {
	switch e.Kind {
	case PointerDown, PointerSecondaryDown:
		if c.drag.State() == DragActive {
			return true
		}
		i := c.HitTest(e.Position)
		if i < 0 {
			return false
		}
		if c.listener.Begin != nil && !c.listener.Begin(i) {
			return false
		}
		dw, dh := c.DialSize()
		pivot := c.Matrix().MapPoint(c.hands[i].Pivot(dw, dh))
		c.drag.Begin(i, pivot, e.Position)
		return true

	case PointerMove:
		i := c.drag.Index()
		if i < 0 {
			return false
		}
		deg := c.drag.Move(e.Position)
		h := c.hands[i]
		if h.DegreesPerUnit == 0 || deg == 0 {
			return true
		}
		c.cancelAnimation(i)
		old := h.Value
		h.Value += deg / h.DegreesPerUnit
		if c.listener.Changed != nil {
			c.listener.Changed(i, h.Value, old)
		}
		c.invalidate()
		return true

	case PointerUp, PointerSecondaryUp, PointerCancel:
		i := c.drag.End()
		if i < 0 {
			return false
		}
		if c.listener.End != nil {
			c.listener.End(i)
		}
		return true
	}
	return false
}
