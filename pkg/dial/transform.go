package dial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Matrix is a 2D affine transformation from dial-local pixels to view pixels.
// Layout: [a, b, c, d, e, f] representing:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// a, d carry scale; b, c carry rotation/skew; e, f carry translation.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix about the origin. Positive angles turn
// clockwise on a y-down screen.
func Rotate(degrees float64) Matrix {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns m * other, which applies other first and m second.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// PostTranslate applies a translation after m.
func (m Matrix) PostTranslate(tx, ty float64) Matrix {
	return Translate(tx, ty).Multiply(m)
}

// PostScale applies a scale about the origin after m.
func (m Matrix) PostScale(sx, sy float64) Matrix {
	return Scale(sx, sy).Multiply(m)
}

// MapPoint applies the matrix to a single point.
func (m Matrix) MapPoint(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// MapPoints maps pts in place and returns the slice for chaining.
func (m Matrix) MapPoints(pts []r2.Vec) []r2.Vec {
	for i, p := range pts {
		pts[i] = m.MapPoint(p)
	}
	return pts
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if it is singular.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	inv := 1.0 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// ScaleX returns the horizontal scale factor of the matrix.
func (m Matrix) ScaleX() float64 {
	return math.Hypot(m[0], m[1])
}

// ScaleY returns the vertical scale factor of the matrix.
func (m Matrix) ScaleY() float64 {
	return math.Hypot(m[2], m[3])
}

// Offset returns the translation part of the matrix.
func (m Matrix) Offset() r2.Vec {
	return r2.Vec{X: m[4], Y: m[5]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m[0], m[2], m[4], m[1], m[3], m[5])
}

// ScaleMode selects how the dial is fitted into the content rectangle.
type ScaleMode uint8

const (
	// ScaleMatrix uses the caller supplied image matrix verbatim.
	ScaleMatrix ScaleMode = iota
	// ScaleFitXY stretches the dial independently on both axes.
	ScaleFitXY
	// ScaleFitStart fits uniformly and aligns to the top-left corner.
	ScaleFitStart
	// ScaleFitCenter fits uniformly and centers.
	ScaleFitCenter
	// ScaleFitEnd fits uniformly and aligns to the bottom-right corner.
	ScaleFitEnd
	// ScaleCenter centers without scaling.
	ScaleCenter
	// ScaleCenterCrop scales uniformly to cover the content, centered.
	ScaleCenterCrop
	// ScaleCenterInside shrinks uniformly to fit but never enlarges.
	ScaleCenterInside
)

var scaleModeNames = map[ScaleMode]string{
	ScaleMatrix:       "matrix",
	ScaleFitXY:        "fit_xy",
	ScaleFitStart:     "fit_start",
	ScaleFitCenter:    "fit_center",
	ScaleFitEnd:       "fit_end",
	ScaleCenter:       "center",
	ScaleCenterCrop:   "center_crop",
	ScaleCenterInside: "center_inside",
}

// ScaleModes lists every mode in declaration order.
var ScaleModes = []ScaleMode{
	ScaleMatrix,
	ScaleFitXY,
	ScaleFitStart,
	ScaleFitCenter,
	ScaleFitEnd,
	ScaleCenter,
	ScaleCenterCrop,
	ScaleCenterInside,
}

func (s ScaleMode) String() string {
	if name, ok := scaleModeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ScaleMode(%d)", s)
}

// ParseScaleMode looks a mode up by its String() name.
func ParseScaleMode(name string) (ScaleMode, error) {
	for mode, n := range scaleModeNames {
		if n == name {
			return mode, nil
		}
	}
	return ScaleMatrix, fmt.Errorf("dial: unknown scale mode %q", name)
}

// ComputeFitTransform returns the matrix mapping dial space into view space
// for the given mode. A zero dial dimension counts as a ratio of 1 on that
// axis; empty content yields the padding translation alone.
func ComputeFitTransform(mode ScaleMode, custom Matrix, contentW, contentH, dialW, dialH, padLeft, padTop float64) Matrix {
	m := Identity()

	switch {
	case mode == ScaleMatrix:
		m = custom
	case contentW <= 0 || contentH <= 0:
		// nothing to fit into
	default:
		rx, ry := ratio(contentW, dialW), ratio(contentH, dialH)

		switch mode {
		case ScaleFitXY:
			m = m.PostScale(rx, ry)
		case ScaleFitStart:
			s := math.Min(rx, ry)
			m = m.PostScale(s, s)
		case ScaleFitCenter:
			s := math.Min(rx, ry)
			m = m.PostScale(s, s).
				PostTranslate((contentW-dialW*s)/2, (contentH-dialH*s)/2)
		case ScaleFitEnd:
			s := math.Min(rx, ry)
			m = m.PostScale(s, s).
				PostTranslate(contentW-dialW*s, contentH-dialH*s)
		case ScaleCenter:
			m = m.PostTranslate((contentW-dialW)/2, (contentH-dialH)/2)
		case ScaleCenterCrop:
			s := math.Max(rx, ry)
			m = m.PostScale(s, s).
				PostTranslate((contentW-dialW*s)/2, (contentH-dialH*s)/2)
		case ScaleCenterInside:
			s := math.Min(1, math.Min(rx, ry))
			m = m.PostScale(s, s).
				PostTranslate((contentW-dialW*s)/2, (contentH-dialH*s)/2)
		}
	}

	return m.PostTranslate(padLeft, padTop)
}

func ratio(content, dial float64) float64 {
	if dial == 0 {
		return 1
	}
	return content / dial
}
