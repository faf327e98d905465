package image

import "math"

// InterpolationMode defines how source pixels are sampled during drawing.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Exact for pixel-aligned transforms, blocky otherwise.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	// Good balance between quality and performance.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sample samples the buffer at continuous pixel coordinates (x, y) using the
// given interpolation mode. Coordinates are in pixel space where (0.5, 0.5)
// is the center of the top-left pixel. Out-of-range coordinates clamp to the
// edge. Returns premultiplied RGBA.
func (b *ImageBuf) Sample(x, y float64, mode InterpolationMode) (r, g, bl, a uint8) {
	switch mode {
	case InterpBilinear:
		return b.SampleBilinear(x, y)
	default:
		return b.SampleNearest(x, y)
	}
}

// SampleNearest returns the pixel whose center is closest to (x, y).
func (b *ImageBuf) SampleNearest(x, y float64) (r, g, bl, a uint8) {
	px := clampInt(int(math.Floor(x)), 0, b.width-1)
	py := clampInt(int(math.Floor(y)), 0, b.height-1)
	return b.GetRGBA(px, py)
}

// SampleBilinear interpolates linearly between the 4 pixels surrounding (x, y).
func (b *ImageBuf) SampleBilinear(x, y float64) (r, g, bl, a uint8) {
	// Shift so integer coordinates sit on pixel centers, then clamp to the
	// valid center range so edge samples repeat the border pixel.
	fx := clampFloat(x-0.5, 0, float64(b.width-1))
	fy := clampFloat(y-0.5, 0, float64(b.height-1))

	x0 := int(fx)
	y0 := int(fy)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, b.width-1)
	y1 := clampInt(y0+1, 0, b.height-1)

	r00, g00, b00, a00 := b.GetRGBA(x0, y0)
	r10, g10, b10, a10 := b.GetRGBA(x1, y0)
	r01, g01, b01, a01 := b.GetRGBA(x0, y1)
	r11, g11, b11, a11 := b.GetRGBA(x1, y1)

	r = lerp2D(r00, r10, r01, r11, tx, ty)
	g = lerp2D(g00, g10, g01, g11, tx, ty)
	bl = lerp2D(b00, b10, b01, b11, tx, ty)
	a = lerp2D(a00, a10, a01, a11, tx, ty)
	return r, g, bl, a
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFloat clamps v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp performs linear interpolation between two byte values.
func lerp(v0, v1 uint8, t float64) float64 {
	return float64(v0)*(1-t) + float64(v1)*t
}

// lerp2D performs bilinear interpolation between four byte values.
func lerp2D(v00, v10, v01, v11 uint8, tx, ty float64) uint8 {
	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return uint8(top*(1-ty) + bottom*ty + 0.5)
}
