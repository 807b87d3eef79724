package dial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointerKind classifies gesture events delivered to a clock.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	// PointerSecondaryDown and PointerSecondaryUp are extra fingers joining
	// or leaving a multi-touch gesture.
	PointerSecondaryDown
	PointerSecondaryUp
	PointerCancel
)

var pointerKindNames = map[PointerKind]string{
	PointerDown:          "Down",
	PointerMove:          "Move",
	PointerUp:            "Up",
	PointerSecondaryDown: "SecondaryDown",
	PointerSecondaryUp:   "SecondaryUp",
	PointerCancel:        "Cancel",
}

func (k PointerKind) String() string {
	if name, ok := pointerKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PointerKind(%d)", k)
}

// PointerEvent is a gesture event in view pixels.
type PointerEvent struct {
	Kind     PointerKind
	Position r2.Vec
}

// DragState is the state of the drag controller.
type DragState uint8

const (
	DragIdle DragState = iota
	DragActive
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "Idle"
	case DragActive:
		return "Dragging"
	}
	return fmt.Sprintf("DragState(%d)", s)
}

// Drag turns a pointer gesture into value changes of a single hand. It does
// no I/O; the owning clock feeds it events and receives the resulting deltas.
type Drag struct {
	state DragState
	index int
	// pivot is fixed at gesture start so value changes cannot move the
	// angle reference mid-gesture.
	pivot r2.Vec
	last  r2.Vec
}

// State reports the controller state.
func (d *Drag) State() DragState {
	return d.state
}

// Index returns the dragged hand, or -1 when idle.
func (d *Drag) Index() int {
	if d.state != DragActive {
		return -1
	}
	return d.index
}

// Begin enters the dragging state for hand index rotating about pivot.
func (d *Drag) Begin(index int, pivot, at r2.Vec) {
	d.state = DragActive
	d.index = index
	d.pivot = pivot
	d.last = at
}

// Move returns the angle swept, in degrees, between the previous pointer
// position and at, measured about the gesture pivot. The result is in
// (-180, 180] so crossing the atan2 branch cut does not cost a full turn.
func (d *Drag) Move(at r2.Vec) float64 {
	if d.state != DragActive {
		return 0
	}
	prev := r2.Sub(d.last, d.pivot)
	cur := r2.Sub(at, d.pivot)
	d.last = at

	delta := math.Atan2(cur.Y, cur.X) - math.Atan2(prev.Y, prev.X)
	return normalizeDegrees(delta * 180 / math.Pi)
}

// End returns to idle and reports the hand that was being dragged, or -1.
func (d *Drag) End() int {
	i := d.Index()
	d.state = DragIdle
	d.index = -1
	return i
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
