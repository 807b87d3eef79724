package dial

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func pointer(length int, pivotX float64) *Hand {
	return &Hand{
		DegreesPerUnit: 6,
		StartAngle:     90,
		PivotX:         pivotX,
		PivotY:         0.5,
		Sprite:         blank("hand", 4, length),
	}
}

func TestFindHandNearestTip(t *testing.T) {
	minute := pointer(40, 0.5)
	second := pointer(40, 0.5)
	second.Value = 15 // pointing right

	hands := []*Hand{minute, second}
	if got := FindHand(r2.Vec{X: 52, Y: 28}, hands, Identity(), 100, 100); got != 0 {
		t.Fatalf("touch near 12 o'clock picked %d, want 0", got)
	}
	if got := FindHand(r2.Vec{X: 75, Y: 51}, hands, Identity(), 100, 100); got != 1 {
		t.Fatalf("touch near 3 o'clock picked %d, want 1", got)
	}
}

func TestFindHandUsesTransform(t *testing.T) {
	hands := []*Hand{pointer(40, 0.5)}
	m := Scale(2, 2).PostTranslate(10, 10)
	// Tip (50, 30) maps to (110, 70).
	if got := FindHand(r2.Vec{X: 110, Y: 70}, hands, m, 100, 100); got != 0 {
		t.Fatalf("FindHand = %d, want 0", got)
	}
}

func TestFindHandTieBreakByArea(t *testing.T) {
	// Tips at (50, 30) and (70, 10) are both 20px from (70, 30), but the
	// touch lies on the second hand's axis.
	short := pointer(40, 0.5)
	long := pointer(80, 0.7)
	touch := r2.Vec{X: 70, Y: 30}

	for run := 0; run < 3; run++ {
		if got := FindHand(touch, []*Hand{short, long}, Identity(), 100, 100); got != 1 {
			t.Fatalf("run %d: FindHand = %d, want 1", run, got)
		}
	}
	if got := FindHand(touch, []*Hand{long, short}, Identity(), 100, 100); got != 0 {
		t.Fatalf("swapped order: FindHand = %d, want 0", got)
	}
}

func TestFindHandTieBreakByIndex(t *testing.T) {
	a := pointer(40, 0.5)
	b := pointer(40, 0.5)
	if got := FindHand(r2.Vec{X: 50, Y: 20}, []*Hand{a, b}, Identity(), 100, 100); got != 0 {
		t.Fatalf("identical hands: FindHand = %d, want 0", got)
	}
}

func TestFindHandSkipsUnusableHands(t *testing.T) {
	placeholder := &Hand{Sprite: blank("p", 4, 40), PivotX: 0.5, PivotY: 0.5}
	noSprite := MinuteHand()
	far := pointer(40, 0.5)
	far.Value = 30

	hands := []*Hand{nil, placeholder, noSprite, far}
	if got := FindHand(r2.Vec{X: 50, Y: 50}, hands, Identity(), 100, 100); got != 3 {
		t.Fatalf("FindHand = %d, want 3", got)
	}
	if got := FindHand(r2.Vec{}, hands[:3], Identity(), 100, 100); got != -1 {
		t.Fatalf("no interactive hands: FindHand = %d, want -1", got)
	}
}

func TestFindHandZeroDial(t *testing.T) {
	hands := []*Hand{pointer(40, 0.5)}
	if got := FindHand(r2.Vec{}, hands, Identity(), 0, 100); got != -1 {
		t.Fatalf("zero width dial: FindHand = %d, want -1", got)
	}
}
