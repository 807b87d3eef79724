// Package sprite provides the image handles drawn by a clock: the dial face
// and the hands. A sprite only exposes its intrinsic size and pixels; where
// and how it is drawn is decided by the render pass.
package sprite

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Sprite is an image with an intrinsic size. Implementations must be
// comparable so backends can cache per-sprite GPU resources.
type Sprite interface {
	// Size reports the intrinsic width and height in pixels.
	Size() image.Point
	// Image returns the pixels. The origin of the returned bounds need not
	// be zero; backends draw Bounds() at the sprite's local origin.
	Image() image.Image
}

// Image is a Sprite backed by an NRGBA buffer.
type Image struct {
	Name string
	img  *image.NRGBA
}

// FromImage wraps img, converting it to NRGBA when necessary.
func FromImage(name string, img image.Image) *Image {
	return &Image{Name: name, img: toNRGBA(img)}
}

func (s *Image) Size() image.Point {
	return s.img.Bounds().Size()
}

func (s *Image) Image() image.Image {
	return s.img
}

// NRGBA exposes the backing buffer for in-place edits. Callers that modify
// it must notify the owning clock.
func (s *Image) NRGBA() *image.NRGBA {
	return s.img
}

func (s *Image) String() string {
	sz := s.Size()
	return fmt.Sprintf("%s (%dx%d)", s.Name, sz.X, sz.Y)
}

// Size returns the intrinsic size of s, or zero for a nil sprite.
func Size(s Sprite) image.Point {
	if s == nil {
		return image.Point{}
	}
	return s.Size()
}

// toNRGBA converts any image to an NRGBA buffer rooted at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
