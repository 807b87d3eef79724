package dial

import (
	"image"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
)

func blank(name string, w, h int) *sprite.Image {
	return sprite.FromImage(name, image.NewNRGBA(image.Rect(0, 0, w, h)))
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertVec(t *testing.T, what string, got, want r2.Vec) {
	t.Helper()
	if !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Fatalf("%s = (%g, %g), want (%g, %g)", what, got.X, got.Y, want.X, want.Y)
	}
}

func assertMatrix(t *testing.T, what string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("%s = %s, want %s", what, got, want)
		}
	}
}
