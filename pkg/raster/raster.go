// Package raster is a software backend for the clock render pass. It paints
// a clock's draw list into an image with golang.org/x/image/draw, for
// snapshots, thumbnails and headless tests.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
)

// Renderer paints clocks into images.
type Renderer struct {
	// Interp resamples rotated and scaled sprites. Nil means draw.BiLinear.
	Interp draw.Interpolator
	// Background fills the image before drawing. Nil leaves dst untouched.
	Background color.Color
}

// Aff3 converts a dial matrix to the x/image row-major layout.
func Aff3(m dial.Matrix) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// Render draws c into dst using the clock's current view size and state.
func (r *Renderer) Render(c *dial.Clock, dst draw.Image) {
	if r.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	}
	interp := r.Interp
	if interp == nil {
		interp = draw.BiLinear
	}
	origin := dst.Bounds().Min

	for _, op := range c.DrawList() {
		src := op.Sprite.Image()
		sr := src.Bounds()
		// Sprites are drawn with their bounds at the local origin.
		m := dial.Translate(float64(origin.X), float64(origin.Y)).
			Multiply(op.Transform).
			Multiply(dial.Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
		interp.Transform(dst, Aff3(m), src, sr, draw.Over, nil)
	}
}

// Snapshot sizes c to w x h and renders it into a new image.
func (r *Renderer) Snapshot(c *dial.Clock, w, h int) *image.RGBA {
	c.SetViewSize(float64(w), float64(h))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	r.Render(c, dst)
	return dst
}

// Render draws c into dst with the default renderer.
func Render(c *dial.Clock, dst draw.Image) {
	(&Renderer{}).Render(c, dst)
}

// Snapshot renders c at w x h with the default renderer.
func Snapshot(c *dial.Clock, w, h int) *image.RGBA {
	return (&Renderer{}).Snapshot(c, w, h)
}
