package fx

import "math"

// CanonicalAngle reduces a rotation in degrees to the equivalent angle in
// [0,360). Unlike Go's % operator, the result is never negative:
// CanonicalAngle(-90) == 270.
func CanonicalAngle(degrees int) int {
	a := degrees % 360
	if a < 0 {
		a += 360
	}
	return a
}

// SwapsDimensions reports whether rotating by the given angle exchanges a
// surface's width and height. True exactly when the canonical angle is 90
// or 270.
func SwapsDimensions(degrees int) bool {
	return CanonicalAngle(degrees)%180 != 0
}

// RotationMatrix returns the affine rotation matrix for the canonical form
// of the given angle:
//
//	| cos  -sin  0 |
//	| sin   cos  0 |
//
// Positive angles rotate clockwise in raster (y-down) coordinates.
func RotationMatrix(degrees int) Matrix {
	rad := float64(CanonicalAngle(degrees)) * math.Pi / 180
	return Rotate(rad)
}
