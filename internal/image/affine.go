package image

import (
	"math"
)

// Affine represents a 2D affine transformation matrix.
//
// The transformation is represented as a 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// mapping source pixel coordinates to destination pixel coordinates.
type Affine struct {
	a, b, c float64 // First row: x' = ax + by + c
	d, e, f float64 // Second row: y' = dx + ey + f
}

// Identity returns the identity transformation (no change).
func Identity() Affine {
	return Affine{
		a: 1, b: 0, c: 0,
		d: 0, e: 1, f: 0,
	}
}

// Translate returns a translation transformation that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{
		a: 1, b: 0, c: tx,
		d: 0, e: 1, f: ty,
	}
}

// Scale returns a scaling transformation that scales by (sx, sy) around the origin.
// Use negative values to mirror.
func Scale(sx, sy float64) Affine {
	return Affine{
		a: sx, b: 0, c: 0,
		d: 0, e: sy, f: 0,
	}
}

// Rotate returns a rotation transformation by angle (in radians) around the
// origin. Positive angles rotate clockwise in y-down raster coordinates.
func Rotate(angle float64) Affine {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine{
		a: cos, b: -sin, c: 0,
		d: sin, e: cos, f: 0,
	}
}

// Multiply returns the result of multiplying this affine transform by another.
// The result applies 'other' first, then 'this'.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a: a.a*other.a + a.b*other.d,
		b: a.a*other.b + a.b*other.e,
		c: a.a*other.c + a.b*other.f + a.c,
		d: a.d*other.a + a.e*other.d,
		e: a.d*other.b + a.e*other.e,
		f: a.d*other.c + a.e*other.f + a.f,
	}
}

// Invert returns the inverse transformation.
// Returns false if the matrix is singular (non-invertible).
func (a Affine) Invert() (Affine, bool) {
	det := a.a*a.e - a.b*a.d
	if math.Abs(det) < 1e-10 {
		return Affine{}, false
	}

	invDet := 1.0 / det

	return Affine{
		a: a.e * invDet,
		b: -a.b * invDet,
		c: (a.b*a.f - a.c*a.e) * invDet,
		d: -a.d * invDet,
		e: a.a * invDet,
		f: (a.c*a.d - a.a*a.f) * invDet,
	}, true
}

// TransformPoint applies the affine transformation to point (x, y).
// Returns the transformed coordinates (x', y').
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.a*x + a.b*y + a.c, a.d*x + a.e*y + a.f
}

// pixelAlignEps absorbs the floating-point error of composing quarter-turn
// rotations from math.Sincos.
const pixelAlignEps = 1e-9

// IsPixelAligned reports whether the transform maps pixel centers exactly
// onto pixel centers: every linear coefficient is 0 or ±1 with one non-zero
// entry per row, and the translation is integral. Quarter-turn rotations,
// axis mirrors and whole-pixel shifts qualify; such transforms can be drawn
// with nearest sampling without resampling loss.
func (a Affine) IsPixelAligned() bool {
	if !isSignedUnitPair(a.a, a.b) || !isSignedUnitPair(a.d, a.e) {
		return false
	}
	// Centers land on centers only when one coefficient per row is ±1.
	if math.Abs(a.a)+math.Abs(a.b) < 0.5 || math.Abs(a.d)+math.Abs(a.e) < 0.5 {
		return false
	}
	return isIntegral(a.c) && isIntegral(a.f)
}

// isSignedUnitPair reports whether both values are within epsilon of 0, 1
// or -1, with at most one of them non-zero.
func isSignedUnitPair(u, v float64) bool {
	return isSignedUnit(u) && isSignedUnit(v) &&
		!(math.Abs(u) > 0.5 && math.Abs(v) > 0.5)
}

func isSignedUnit(v float64) bool {
	av := math.Abs(v)
	return av < pixelAlignEps || math.Abs(av-1) < pixelAlignEps
}

func isIntegral(v float64) bool {
	return math.Abs(v-math.Round(v)) < pixelAlignEps
}
