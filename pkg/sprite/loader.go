package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupported is returned for data no known decoder understands.
var ErrUnsupported = errors.New("sprite: unsupported image format")

type decoder func(io.Reader) (image.Image, error)

// Formats are sniffed explicitly instead of through image.Decode: TGA has no
// magic number, so its registered format would shadow everything after it.
var magics = []struct {
	prefix string
	decode decoder
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"RIFF", nativewebp.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
}

// Load reads and decodes the image at path. PNG, JPEG, GIF, WebP, BMP and
// TIFF are recognised by content; TGA is selected by the .tga extension.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: read %s: %w", path, err)
	}

	name := filepath.Base(path)
	var s *Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		var img image.Image
		img, err = tga.Decode(bytes.NewReader(raw))
		if err == nil {
			s = FromImage(name, img)
		}
	} else {
		s, err = Decode(name, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a sprite from raw file contents.
func Decode(name string, raw []byte) (*Image, error) {
	for _, m := range magics {
		if !bytes.HasPrefix(raw, []byte(m.prefix)) {
			continue
		}
		img, err := m.decode(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return FromImage(name, img), nil
	}
	return nil, ErrUnsupported
}
