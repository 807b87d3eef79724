// Package face reads clock face description files and builds clocks from
// them.
//
// A face file is a single s-expression:
//
//	(clockface
//	  (dial "dial.png")
//	  (scale fit_center)
//	  (is24hr no)
//	  (draw_reversed yes)
//	  (adjust_view_bounds no)
//	  (padding 8 8 8 8)
//	  (hand hour (sprite "hour.png") (degrees_per_unit 30) (start_angle 90)
//	        (pivot 0.5 0.5) (interval 3600000) (value 3)))
//
// Every form is optional. A face without hand forms gets the hour, minute
// and second presets.
package face

import (
	"errors"
	"fmt"
	"time"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
)

// ErrSyntax wraps every error about well-formed s-expressions that do not
// describe a valid face.
var ErrSyntax = errors.New("face: invalid face")

// Face is a decoded face file.
type Face struct {
	Dial             string
	Scale            dial.ScaleMode
	Is24Hour         bool
	DrawReversed     bool
	AdjustViewBounds bool
	Padding          dial.Insets
	Hands            []HandSpec
}

// HandSpec describes one hand of a face.
type HandSpec struct {
	Name           string
	Sprite         string
	DegreesPerUnit float64
	StartAngle     float64
	PivotX, PivotY float64
	Interval       time.Duration
	Value          float64
}

// Default returns the face used when no file is given: the built-in dial
// art with the three preset hands.
func Default() *Face {
	f := &Face{Scale: dial.ScaleFitCenter, DrawReversed: true}
	f.Hands = defaultHands(false)
	return f
}

func defaultHands(is24h bool) []HandSpec {
	var hands []HandSpec
	for _, name := range []string{"hour", "minute", "second"} {
		h, _ := preset(name, is24h)
		hands = append(hands, h)
	}
	return hands
}

// preset returns the defaults for a named hand and whether the name is
// one of the presets.
func preset(name string, is24h bool) (HandSpec, bool) {
	var h *dial.Hand
	switch name {
	case "hour":
		h = dial.HourHand(is24h)
	case "minute":
		h = dial.MinuteHand()
	case "second":
		h = dial.SecondHand()
	default:
		return HandSpec{Name: name}, false
	}
	return HandSpec{
		Name:           name,
		DegreesPerUnit: h.DegreesPerUnit,
		StartAngle:     h.StartAngle,
		PivotX:         h.PivotX,
		PivotY:         h.PivotY,
		Interval:       h.Interval,
	}, true
}

func syntaxErrorf(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}

func decode(file *File) (*Face, error) {
	root := file.Root
	if root.Head != "clockface" {
		return nil, syntaxErrorf(root.Pos, "expected clockface, got %q", root.Head)
	}

	f := Default()
	f.Hands = nil
	var hands []*List

	for _, n := range root.Items {
		if n.List == nil {
			return nil, syntaxErrorf(n.Pos, "unexpected %s in clockface", n.kind())
		}
		l := n.List
		var err error
		switch l.Head {
		case "dial":
			f.Dial, err = stringArg(l)
		case "scale":
			var name string
			if name, err = symbolArg(l); err == nil {
				f.Scale, err = dial.ParseScaleMode(name)
				if err != nil {
					err = syntaxErrorf(l.Pos, "%v", err)
				}
			}
		case "is24hr":
			f.Is24Hour, err = boolArg(l)
		case "draw_reversed":
			f.DrawReversed, err = boolArg(l)
		case "adjust_view_bounds":
			f.AdjustViewBounds, err = boolArg(l)
		case "padding":
			f.Padding, err = paddingArgs(l)
		case "hand":
			hands = append(hands, l)
		default:
			err = syntaxErrorf(l.Pos, "unknown form %q", l.Head)
		}
		if err != nil {
			return nil, err
		}
	}

	// Hands are decoded last so is24hr applies wherever it appears.
	if len(hands) == 0 {
		f.Hands = defaultHands(f.Is24Hour)
	}
	for _, l := range hands {
		h, err := decodeHand(l, f.Is24Hour)
		if err != nil {
			return nil, err
		}
		f.Hands = append(f.Hands, h)
	}
	return f, nil
}

func decodeHand(l *List, is24h bool) (HandSpec, error) {
	if len(l.Items) == 0 || l.Items[0].Symbol == nil {
		return HandSpec{}, syntaxErrorf(l.Pos, "hand needs a name")
	}
	h, _ := preset(*l.Items[0].Symbol, is24h)

	for _, n := range l.Items[1:] {
		if n.List == nil {
			return HandSpec{}, syntaxErrorf(n.Pos, "unexpected %s in hand %q", n.kind(), h.Name)
		}
		sub := n.List
		var err error
		switch sub.Head {
		case "sprite":
			h.Sprite, err = stringArg(sub)
		case "degrees_per_unit":
			h.DegreesPerUnit, err = numberArg(sub)
		case "start_angle":
			h.StartAngle, err = numberArg(sub)
		case "pivot":
			var xy []float64
			if xy, err = numberArgs(sub, 2); err == nil {
				h.PivotX, h.PivotY = xy[0], xy[1]
			}
		case "interval":
			var ms float64
			if ms, err = numberArg(sub); err == nil {
				h.Interval = time.Duration(ms * float64(time.Millisecond))
			}
		case "value":
			h.Value, err = numberArg(sub)
		default:
			err = syntaxErrorf(sub.Pos, "unknown hand form %q", sub.Head)
		}
		if err != nil {
			return HandSpec{}, err
		}
	}
	return h, nil
}

func single(l *List) (*Node, error) {
	if len(l.Items) != 1 {
		return nil, syntaxErrorf(l.Pos, "%s takes 1 argument, got %d", l.Head, len(l.Items))
	}
	return l.Items[0], nil
}

func stringArg(l *List) (string, error) {
	n, err := single(l)
	if err != nil {
		return "", err
	}
	if n.String == nil {
		return "", syntaxErrorf(n.Pos, "%s wants a string, got %s", l.Head, n.kind())
	}
	return *n.String, nil
}

func symbolArg(l *List) (string, error) {
	n, err := single(l)
	if err != nil {
		return "", err
	}
	if n.Symbol == nil {
		return "", syntaxErrorf(n.Pos, "%s wants a symbol, got %s", l.Head, n.kind())
	}
	return *n.Symbol, nil
}

func boolArg(l *List) (bool, error) {
	s, err := symbolArg(l)
	if err != nil {
		return false, err
	}
	switch s {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	}
	return false, syntaxErrorf(l.Pos, "%s wants yes or no, got %q", l.Head, s)
}

func numberArg(l *List) (float64, error) {
	v, err := numberArgs(l, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func numberArgs(l *List, count int) ([]float64, error) {
	if len(l.Items) != count {
		return nil, syntaxErrorf(l.Pos, "%s takes %d numbers, got %d arguments", l.Head, count, len(l.Items))
	}
	v := make([]float64, count)
	for i, n := range l.Items {
		if n.Number == nil {
			return nil, syntaxErrorf(n.Pos, "%s wants a number, got %s", l.Head, n.kind())
		}
		v[i] = *n.Number
	}
	return v, nil
}

// paddingArgs accepts one value for all sides or left, top, right, bottom.
func paddingArgs(l *List) (dial.Insets, error) {
	if len(l.Items) == 1 {
		v, err := numberArg(l)
		return dial.Insets{Left: v, Top: v, Right: v, Bottom: v}, err
	}
	v, err := numberArgs(l, 4)
	if err != nil {
		return dial.Insets{}, err
	}
	return dial.Insets{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}
