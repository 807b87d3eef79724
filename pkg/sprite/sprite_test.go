package sprite

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
			}
		}
	}
	return img
}

func TestDecodeByMagic(t *testing.T) {
	src := checker(6, 4)
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"webp": func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}
	for name, enc := range encoders {
		var buf bytes.Buffer
		if err := enc(&buf); err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		s, err := Decode(name, buf.Bytes())
		if err != nil {
			t.Fatalf("Decode(%s) returned error: %v", name, err)
		}
		if got := s.Size(); got != image.Pt(6, 4) {
			t.Fatalf("%s size = %v, want (6,4)", name, got)
		}
		if got := s.NRGBA().NRGBAAt(0, 0); got.R != 200 {
			t.Fatalf("%s pixel (0,0) = %v, want red 200", name, got)
		}
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode("junk", []byte("definitely not an image"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Decode(junk) error = %v, want ErrUnsupported", err)
	}
}

func TestLoadWrapsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	path := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(path, []byte("junk"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Load(junk) error = %v, want ErrUnsupported", err)
	}
}

func TestFromImageRebasesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	src.SetNRGBA(10, 20, color.NRGBA{G: 255, A: 255})
	s := FromImage("offset", src)
	if got := s.Image().Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v, want (0,0)-(4,3)", got)
	}
	if got := s.NRGBA().NRGBAAt(0, 0); got.G != 255 {
		t.Fatalf("pixel (0,0) = %v, want green", got)
	}
}

func TestSizeOfNil(t *testing.T) {
	if got := Size(nil); got != (image.Point{}) {
		t.Fatalf("Size(nil) = %v, want zero", got)
	}
}

func TestDefaultArt(t *testing.T) {
	d := DefaultDial(DefaultSize)
	if d.Size() != image.Pt(DefaultSize, DefaultSize) {
		t.Fatalf("dial size = %v", d.Size())
	}
	c := DefaultSize / 2
	if got := d.NRGBA().NRGBAAt(c, c); got.A != 255 {
		t.Fatalf("dial center alpha = %d, want 255", got.A)
	}
	if got := d.NRGBA().NRGBAAt(0, 0); got.A != 0 {
		t.Fatalf("dial corner alpha = %d, want 0", got.A)
	}

	hour, minute, second := DefaultHourHand(DefaultSize), DefaultMinuteHand(DefaultSize), DefaultSecondHand(DefaultSize)
	if !(hour.Size().Y < minute.Size().Y && minute.Size().Y < second.Size().Y) {
		t.Fatalf("hand lengths not increasing: %v %v %v", hour, minute, second)
	}
	// Pointing up: the tip half of the sprite is painted, the far bottom is not.
	sz := minute.Size()
	if got := minute.NRGBA().NRGBAAt(sz.X/2, sz.Y/4); got.A == 0 {
		t.Fatalf("minute hand shaft is transparent")
	}
	if got := minute.NRGBA().NRGBAAt(sz.X/2, sz.Y-2); got.A != 0 {
		t.Fatalf("minute hand tail is painted")
	}
}
