package face

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
)

const sampleFace = `; station clock
(clockface
  (dial "dial.png")
  (scale center_inside)
  (draw_reversed no)
  (padding 1 2 3 4)
  (hand hour (sprite "hour.png") (value 3))
  (hand minute (pivot 0.5 0.6) (interval 30000))
  (hand marker (degrees_per_unit 1.5) (start_angle -90) (value -2.5))
  (is24hr yes))
`

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	return p
}

func TestParseFace(t *testing.T) {
	f, err := newParser(t).ParseString("sample.face", sampleFace)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}

	if f.Dial != "dial.png" {
		t.Fatalf("Dial = %q, want dial.png", f.Dial)
	}
	if f.Scale != dial.ScaleCenterInside {
		t.Fatalf("Scale = %s, want %s", f.Scale, dial.ScaleCenterInside)
	}
	if !f.Is24Hour || f.DrawReversed || f.AdjustViewBounds {
		t.Fatalf("flags = 24h:%v reversed:%v adjust:%v, want true false false", f.Is24Hour, f.DrawReversed, f.AdjustViewBounds)
	}
	if want := (dial.Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}); f.Padding != want {
		t.Fatalf("Padding = %+v, want %+v", f.Padding, want)
	}
	if len(f.Hands) != 3 {
		t.Fatalf("len(Hands) = %d, want 3", len(f.Hands))
	}

	hour := f.Hands[0]
	if hour.Sprite != "hour.png" || hour.Value != 3 {
		t.Fatalf("hour = %+v", hour)
	}
	// is24hr appears after the hands but still selects the 24 hour preset.
	if hour.DegreesPerUnit != 15 {
		t.Fatalf("hour DegreesPerUnit = %g, want 15", hour.DegreesPerUnit)
	}

	minute := f.Hands[1]
	if minute.PivotY != 0.6 || minute.Interval != 30*time.Second || minute.DegreesPerUnit != 6 {
		t.Fatalf("minute = %+v", minute)
	}

	marker := f.Hands[2]
	want := HandSpec{Name: "marker", DegreesPerUnit: 1.5, StartAngle: -90, Value: -2.5}
	if marker != want {
		t.Fatalf("marker = %+v, want %+v", marker, want)
	}
}

func TestParseEmptyFaceGetsPresets(t *testing.T) {
	f, err := newParser(t).ParseString("", "(clockface)")
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if len(f.Hands) != 3 || f.Hands[2].Name != "second" {
		t.Fatalf("Hands = %+v, want hour, minute, second", f.Hands)
	}
	if f.Scale != dial.ScaleFitCenter || !f.DrawReversed {
		t.Fatalf("defaults = %s reversed:%v", f.Scale, f.DrawReversed)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		syntax bool
		where  string
	}{
		{"unbalanced", "(clockface (dial \"a.png\")", false, ""},
		{"wrong root", "(watchface)", true, "1:1"},
		{"unknown form", "(clockface\n  (chime yes))", true, "2:3"},
		{"bad scale", "(clockface (scale stretch))", true, ""},
		{"bad bool", "(clockface (is24hr maybe))", true, ""},
		{"string for number", "(clockface (hand hour (value \"3\")))", true, ""},
		{"short padding", "(clockface (padding 1 2))", true, ""},
		{"unnamed hand", "(clockface (hand (value 1)))", true, ""},
		{"unknown hand form", "(clockface (hand hour (length 3)))", true, ""},
		{"stray atom", "(clockface 42)", true, ""},
	}

	p := newParser(t)
	for _, tc := range cases {
		_, err := p.ParseString("bad.face", tc.input)
		if err == nil {
			t.Fatalf("%s: ParseString returned nil error", tc.name)
		}
		if got := errors.Is(err, ErrSyntax); got != tc.syntax {
			t.Fatalf("%s: errors.Is(ErrSyntax) = %v, want %v (%v)", tc.name, got, tc.syntax, err)
		}
		if tc.where != "" && !strings.Contains(err.Error(), "bad.face:"+tc.where) {
			t.Fatalf("%s: error %q does not mention bad.face:%s", tc.name, err, tc.where)
		}
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestBuildLoadsSprites(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "dial.png"), 120, 80)
	writePNG(t, filepath.Join(dir, "hour.png"), 6, 50)

	path := filepath.Join(dir, "station.face")
	if err := os.WriteFile(path, []byte(sampleFace), 0o644); err != nil {
		t.Fatalf("write face: %v", err)
	}

	f, err := newParser(t).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	c, err := f.Build(dir)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if w, h := c.DialSize(); w != 120 || h != 80 {
		t.Fatalf("DialSize() = %gx%g, want 120x80", w, h)
	}
	if c.NumHands() != 3 {
		t.Fatalf("NumHands() = %d, want 3", c.NumHands())
	}
	if got := c.Hand(0).Sprite.Size(); got != image.Pt(6, 50) {
		t.Fatalf("hour sprite size = %v, want (6,50)", got)
	}
	if c.Hand(1).Sprite == nil {
		t.Fatalf("minute hand has no default sprite")
	}
	if c.Hand(2).Sprite != nil {
		t.Fatalf("custom hand got a default sprite")
	}
	if c.ScaleMode() != dial.ScaleCenterInside || c.DrawReversed() || !c.Is24Hour() {
		t.Fatalf("clock settings not applied: %s reversed:%v 24h:%v", c.ScaleMode(), c.DrawReversed(), c.Is24Hour())
	}
	if got := c.HandValue(2); got != -2.5 {
		t.Fatalf("marker value = %g, want -2.5", got)
	}
}

func TestBuildMissingSprite(t *testing.T) {
	f := Default()
	f.Dial = "missing.png"
	if _, err := f.Build(t.TempDir()); err == nil {
		t.Fatalf("Build with missing dial returned nil error")
	}
}

func TestBuildDefault(t *testing.T) {
	c, err := Default().Build("")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	for i := 0; i < c.NumHands(); i++ {
		if !c.Hand(i).Interactive() {
			t.Fatalf("default hand %d is not interactive", i)
		}
	}
	if c.SyncInterval() != time.Second {
		t.Fatalf("SyncInterval() = %v, want 1s", c.SyncInterval())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "dial.png"), 64, 64)
	path := filepath.Join(dir, "plain.face")
	if err := os.WriteFile(path, []byte(`(clockface (dial "dial.png") (scale center))`), 0o644); err != nil {
		t.Fatalf("write face: %v", err)
	}

	c, f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.Scale != dial.ScaleCenter || c.ScaleMode() != dial.ScaleCenter {
		t.Fatalf("scale = %s/%s, want center", f.Scale, c.ScaleMode())
	}
	if w, _ := c.DialSize(); w != 64 {
		t.Fatalf("dial width = %g, want 64", w)
	}

	if _, _, err := Load(filepath.Join(dir, "nope.face")); err == nil {
		t.Fatalf("Load of missing file returned nil error")
	}

	c, _, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if c.NumHands() != 3 {
		t.Fatalf("Load(\"\") has %d hands, want 3", c.NumHands())
	}
}
