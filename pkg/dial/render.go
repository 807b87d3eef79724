package dial

import (
	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
)

// DrawOp is one sprite to paint with its sprite-to-view transform.
type DrawOp struct {
	Sprite    sprite.Sprite
	Transform Matrix
}

// DrawList returns the paint operations for the current state, dial first.
// A clock without a dial draws nothing. Hands without a sprite are skipped.
//
// Each hand is translated to its pivot, rotated by its value and moved back
// by half its own size, so it always turns about the pivot whatever the
// sprite dimensions.
func (c *Clock) DrawList() []DrawOp {
	if c.dial == nil {
		return nil
	}
	m := c.Matrix()
	dw, dh := c.DialSize()

	ops := make([]DrawOp, 0, len(c.hands)+1)
	ops = append(ops, DrawOp{Sprite: c.dial, Transform: m})

	n := len(c.hands)
	for k := 0; k < n; k++ {
		i := k
		if c.drawReversed {
			i = n - 1 - k
		}
		h := c.hands[i]
		if h.Sprite == nil {
			continue
		}
		sz := sprite.Size(h.Sprite)
		p := h.Pivot(dw, dh)
		local := Translate(p.X, p.Y).
			Multiply(Rotate(h.Rotation())).
			Multiply(Translate(-float64(sz.X)/2, -float64(sz.Y)/2))
		ops = append(ops, DrawOp{Sprite: h.Sprite, Transform: m.Multiply(local)})
	}
	return ops
}
