package dial

import (
	"testing"
	"time"
)

func TestMatrixIsCached(t *testing.T) {
	c := NewClock(blank("dial", 100, 100))
	c.SetViewSize(200, 100)

	m := c.Matrix()
	c.Matrix()
	if c.fitPasses != 1 {
		t.Fatalf("fitPasses = %d after two reads, want 1", c.fitPasses)
	}
	assertMatrix(t, "fit center", m, Matrix{1, 0, 0, 1, 50, 0})

	c.SetViewSize(200, 100)
	c.SetImageMatrix(Scale(3, 3)) // ignored outside ScaleMatrix
	c.Matrix()
	if c.fitPasses != 1 {
		t.Fatalf("fitPasses = %d after no-op changes, want 1", c.fitPasses)
	}

	steps := []struct {
		name   string
		change func()
	}{
		{"view size", func() { c.SetViewSize(300, 300) }},
		{"padding", func() { c.SetPadding(Insets{Left: 10, Top: 10, Right: 10, Bottom: 10}) }},
		{"scale mode", func() { c.SetScaleMode(ScaleMatrix) }},
		{"image matrix", func() { c.SetImageMatrix(Scale(2, 2)) }},
		{"dial", func() { c.SetDial(blank("other", 50, 50)) }},
		{"sprite changed", func() { c.SpriteChanged(c.Dial()) }},
	}
	for i, step := range steps {
		step.change()
		c.Matrix()
		if want := i + 2; c.fitPasses != want {
			t.Fatalf("%s: fitPasses = %d, want %d", step.name, c.fitPasses, want)
		}
	}
	assertMatrix(t, "custom with padding", c.Matrix(), Scale(2, 2).PostTranslate(10, 10))
}

func TestPaddingShrinksContent(t *testing.T) {
	c := NewClock(blank("dial", 100, 100))
	c.SetPadding(Insets{Left: 10, Top: 20, Right: 30, Bottom: 40})
	c.SetViewSize(140, 160)
	assertMatrix(t, "padded", c.Matrix(), Translate(10, 20))
}

func TestSetNumHands(t *testing.T) {
	c := NewClock(nil)
	c.SetHandValue(HandMinute, 12, false)

	c.SetNumHands(5)
	if c.NumHands() != 5 {
		t.Fatalf("NumHands() = %d, want 5", c.NumHands())
	}
	if got := c.HandValue(HandMinute); got != 12 {
		t.Fatalf("minute value after grow = %g, want 12", got)
	}
	if h := c.Hand(4); h.DegreesPerUnit != 0 || h.Interactive() {
		t.Fatalf("new slot is not a placeholder: %+v", h)
	}

	c.SetNumHands(2)
	if c.NumHands() != 2 {
		t.Fatalf("NumHands() = %d, want 2", c.NumHands())
	}
	if got := c.HandValue(HandMinute); got != 12 {
		t.Fatalf("minute value after shrink = %g, want 12", got)
	}
}

func TestSetNumHandsCancelsRemoved(t *testing.T) {
	c, tw := animatedClock()
	c.SetNumHands(2)
	c.Hand(1).DegreesPerUnit = 6
	c.SetHandValue(1, 10, false)
	c.AnimateTo(1, 20)
	c.SetNumHands(1)
	if !tw.last().done {
		t.Fatalf("animation of removed hand still running")
	}
}

func TestSetNumHandsEndsDrag(t *testing.T) {
	c := dragClock()
	var ended []int
	c.SetListener(Listener{End: func(i int) { ended = append(ended, i) }})
	c.HandlePointer(PointerEvent{Kind: PointerDown, Position: onCircle(-90)})
	c.SetNumHands(0)
	if c.Dragging() != -1 {
		t.Fatalf("drag survived removal of its hand")
	}
	if len(ended) != 1 || ended[0] != 0 {
		t.Fatalf("ended = %v, want [0]", ended)
	}
	if c.HandlePointer(PointerEvent{Kind: PointerMove, Position: onCircle(0)}) {
		t.Fatalf("move after removal was consumed")
	}
	if c.HandlePointer(PointerEvent{Kind: PointerUp}) {
		t.Fatalf("up after removal was consumed")
	}
	if len(ended) != 1 {
		t.Fatalf("ended = %v, want a single End", ended)
	}
}

func TestSetNumHandsNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("SetNumHands(-1) did not panic")
		}
	}()
	NewClock(nil).SetNumHands(-1)
}

func TestHandIndexOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("SetHandValue(3) did not panic")
		}
	}()
	NewClock(nil).SetHandValue(3, 1, false)
}

func TestSetTime(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

	c := NewClock(nil)
	c.SetTime(at, false)
	want := []float64{3, 4, 5}
	for i, w := range want {
		if got := c.HandValue(i); got != w {
			t.Fatalf("hand %d = %g, want %g", i, got, w)
		}
	}

	c.SetIs24Hour(true)
	c.SetTime(at, false)
	if got := c.HandValue(HandHour); got != 15 {
		t.Fatalf("24h hour = %g, want 15", got)
	}

	short := NewClockWithHands(nil, HourHand(false))
	short.SetTime(at, false)
	if got := short.HandValue(HandHour); got != 3 {
		t.Fatalf("single hand hour = %g, want 3", got)
	}
}

func TestSyncInterval(t *testing.T) {
	if got := NewClock(nil).SyncInterval(); got != time.Second {
		t.Fatalf("SyncInterval() = %v, want 1s", got)
	}
	c := NewClockWithHands(nil, HourHand(false), MinuteHand(), &Hand{})
	if got := c.SyncInterval(); got != time.Minute {
		t.Fatalf("SyncInterval() = %v, want 1m", got)
	}
	if got := NewClockWithHands(nil, &Hand{}).SyncInterval(); got != 0 {
		t.Fatalf("SyncInterval() = %v, want 0", got)
	}
}

func TestMeasure(t *testing.T) {
	c := NewClock(blank("dial", 100, 50))
	c.SetPadding(Insets{Left: 5, Right: 5})

	if w, h := c.MinSize(); w != 110 || h != 50 {
		t.Fatalf("MinSize() = %gx%g, want 110x50", w, h)
	}

	cases := []struct {
		name                   string
		adjust                 bool
		minW, minH, maxW, maxH float64
		wantW, wantH           float64
	}{
		{"loose", false, 0, 0, 1000, 1000, 110, 50},
		{"tight", false, 300, 300, 300, 300, 300, 300},
		{"clamped", false, 0, 0, 80, 40, 80, 40},
		{"fixed width", false, 220, 0, 220, 1000, 220, 50},
		{"fixed width adjusted", true, 220, 0, 220, 1000, 220, 105},
		{"fixed height adjusted", true, 0, 25, 1000, 25, 60, 25},
		{"adjusted limited", true, 440, 0, 440, 120, 440, 120},
	}
	for _, tc := range cases {
		c.adjustViewBounds = tc.adjust
		w, h := c.Measure(tc.minW, tc.minH, tc.maxW, tc.maxH)
		if !near(w, tc.wantW) || !near(h, tc.wantH) {
			t.Fatalf("%s: Measure = %gx%g, want %gx%g", tc.name, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestAdjustViewBoundsForcesFitCenter(t *testing.T) {
	c := NewClock(nil)
	c.SetScaleMode(ScaleCenterCrop)
	c.SetAdjustViewBounds(true)
	if c.ScaleMode() != ScaleFitCenter {
		t.Fatalf("ScaleMode() = %s, want %s", c.ScaleMode(), ScaleFitCenter)
	}
}
