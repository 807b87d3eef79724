package sprite

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// DefaultSize is the edge length of the built-in dial.
const DefaultSize = 256

var (
	faceColor = color.NRGBA{R: 250, G: 250, B: 246, A: 255}
	rimColor  = color.NRGBA{R: 40, G: 44, B: 52, A: 255}
	tickColor = color.NRGBA{R: 60, G: 64, B: 72, A: 255}
	handColor = color.NRGBA{R: 28, G: 30, B: 36, A: 255}
	secColor  = color.NRGBA{R: 214, G: 48, B: 49, A: 255}
)

// DefaultDial renders the built-in dial: a light disc with a dark rim, 60
// minute ticks and 12 heavier hour ticks.
func DefaultDial(size int) *Image {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Over

	c := float32(size) / 2
	circle(z, c, c, c)
	z.Draw(dst, dst.Bounds(), image.NewUniform(rimColor), image.Point{})

	z.Reset(size, size)
	z.DrawOp = draw.Over
	circle(z, c, c, c*0.94)
	z.Draw(dst, dst.Bounds(), image.NewUniform(faceColor), image.Point{})

	z.Reset(size, size)
	z.DrawOp = draw.Over
	for i := 0; i < 60; i++ {
		length, width := c*0.06, c*0.015
		if i%5 == 0 {
			length, width = c*0.14, c*0.035
		}
		rad := float64(i) * 6 * math.Pi / 180
		tick(z, c, c, c*0.9, length, width, rad)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(tickColor), image.Point{})

	return &Image{Name: "default-dial", img: dst}
}

// DefaultHourHand renders a hand for a dial of the given size. Hands point
// up with the pivot at the image center, so the tip sits Height/2 away.
func DefaultHourHand(size int) *Image {
	return hand("default-hour", size, 0.28, 0.045, handColor)
}

// DefaultMinuteHand is the longer, thinner counterpart of DefaultHourHand.
func DefaultMinuteHand(size int) *Image {
	return hand("default-minute", size, 0.4, 0.03, handColor)
}

// DefaultSecondHand is a thin red sweep hand.
func DefaultSecondHand(size int) *Image {
	return hand("default-second", size, 0.44, 0.012, secColor)
}

func hand(name string, size int, length, width float64, col color.NRGBA) *Image {
	l := float32(length * float64(size))
	w := float32(math.Max(2, width*float64(size)))
	ww := int(math.Ceil(float64(w))) + 2
	if ww%2 == 1 {
		ww++
	}
	hh := int(math.Ceil(float64(2 * l)))
	dst := image.NewNRGBA(image.Rect(0, 0, ww, hh))

	z := vector.NewRasterizer(ww, hh)
	z.DrawOp = draw.Over
	cx, cy := float32(ww)/2, float32(hh)/2
	z.MoveTo(cx-w/2, cy+w)
	z.LineTo(cx-w/2, cy-l+w)
	z.LineTo(cx, cy-l)
	z.LineTo(cx+w/2, cy-l+w)
	z.LineTo(cx+w/2, cy+w)
	z.ClosePath()
	circle(z, cx, cy, w)
	z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})

	return &Image{Name: name, img: dst}
}

// circle appends a closed circle approximated by four cubic Béziers.
func circle(z *vector.Rasterizer, cx, cy, r float32) {
	const k = 0.5522847498
	kr := k * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	z.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	z.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	z.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	z.ClosePath()
}

// tick appends a radial bar whose outer end sits at radius outer.
func tick(z *vector.Rasterizer, cx, cy, outer, length, width float32, rad float64) {
	sin, cos := math.Sincos(rad)
	dx, dy := float32(sin), float32(-cos)
	nx, ny := -dy*width/2, dx*width/2
	ox, oy := cx+dx*outer, cy+dy*outer
	ix, iy := cx+dx*(outer-length), cy+dy*(outer-length)
	z.MoveTo(ox+nx, oy+ny)
	z.LineTo(ox-nx, oy-ny)
	z.LineTo(ix-nx, iy-ny)
	z.LineTo(ix+nx, iy+ny)
	z.ClosePath()
}
