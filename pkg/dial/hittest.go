package dial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// tieEpsilon is the difference, in view pixels or square pixels, below which
// two distances or triangle areas count as equal.
const tieEpsilon = 1e-9

// FindHand returns the index of the hand whose tip, mapped through m, lies
// nearest to touch (view space), or -1 when nothing can be hit. Hands without
// a sprite or with zero degrees per unit are skipped. Equidistant tips are
// resolved by the smaller area of the (pivot, tip, touch) triangle, i.e. the
// hand pointing most directly at the touch, then by the lower index.
func FindHand(touch r2.Vec, hands []*Hand, m Matrix, dialW, dialH float64) int {
	if dialW == 0 || dialH == 0 {
		return -1
	}

	// pts holds pivot/tip pairs so the whole batch maps in one pass.
	idx := make([]int, 0, len(hands))
	pts := make([]r2.Vec, 0, 2*len(hands))
	for i, h := range hands {
		if h == nil || !h.Interactive() {
			continue
		}
		idx = append(idx, i)
		pts = append(pts, h.Pivot(dialW, dialH), h.Tip(dialW, dialH))
	}
	m.MapPoints(pts)

	best := -1
	bestDist := math.Inf(1)
	bestArea := math.Inf(1)
	for k, i := range idx {
		pivot, tip := pts[2*k], pts[2*k+1]
		dist := r2.Norm(r2.Sub(touch, tip))
		area := triangleArea(pivot, tip, touch)

		switch {
		case dist < bestDist-tieEpsilon:
		case math.Abs(dist-bestDist) <= tieEpsilon && area < bestArea-tieEpsilon:
		default:
			continue
		}
		best, bestDist, bestArea = i, dist, area
	}
	return best
}

// triangleArea returns the unsigned area of the triangle a, b, c.
func triangleArea(a, b, c r2.Vec) float64 {
	return math.Abs(r2.Cross(r2.Sub(b, a), r2.Sub(c, a))) / 2
}
