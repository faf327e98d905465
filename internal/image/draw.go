package image

import "math"

// Rect represents a rectangular region in pixel coordinates.
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}

// Draw composites src onto dst through the given affine transform using
// source-over blending in premultiplied space. The transform maps source
// pixel coordinates to destination pixel coordinates. Destination pixels are
// inverse-mapped at their centers; samples falling outside the source bounds
// are skipped rather than clamped.
func Draw(dst, src *ImageBuf, transform Affine, interp InterpolationMode) error {
	if dst == nil || src == nil {
		return ErrInvalidDimensions
	}
	if src.IsEmpty() || dst.IsEmpty() {
		return nil
	}

	inv, ok := transform.Invert()
	if !ok {
		// Degenerate transforms collapse the source to zero area.
		return nil
	}

	region := transformedBounds(src, transform, dst.width, dst.height)
	if region.Width <= 0 || region.Height <= 0 {
		return nil
	}

	srcW := float64(src.width)
	srcH := float64(src.height)

	for dy := region.Y; dy < region.Y+region.Height; dy++ {
		for dx := region.X; dx < region.X+region.Width; dx++ {
			// Inverse-map the destination pixel center into source space.
			sx, sy := inv.TransformPoint(float64(dx)+0.5, float64(dy)+0.5)
			if sx < 0 || sx >= srcW || sy < 0 || sy >= srcH {
				continue
			}

			sr, sg, sb, sa := src.Sample(sx, sy, interp)
			if sa == 0 && sr == 0 && sg == 0 && sb == 0 {
				continue
			}

			offset := dst.PixelOffset(dx, dy)
			blendSourceOver(dst.data[offset:offset+4], sr, sg, sb, sa)
		}
	}
	return nil
}

// transformedBounds returns the destination-space bounding box of the
// transformed source rectangle, clipped to the destination dimensions.
func transformedBounds(src *ImageBuf, transform Affine, dstW, dstH int) Rect {
	w := float64(src.width)
	h := float64(src.height)

	x0, y0 := transform.TransformPoint(0, 0)
	x1, y1 := transform.TransformPoint(w, 0)
	x2, y2 := transform.TransformPoint(0, h)
	x3, y3 := transform.TransformPoint(w, h)

	minX := int(math.Floor(min4(x0, x1, x2, x3)))
	minY := int(math.Floor(min4(y0, y1, y2, y3)))
	maxX := int(math.Ceil(max4(x0, x1, x2, x3)))
	maxY := int(math.Ceil(max4(y0, y1, y2, y3)))

	minX = clampInt(minX, 0, dstW)
	minY = clampInt(minY, 0, dstH)
	maxX = clampInt(maxX, 0, dstW)
	maxY = clampInt(maxY, 0, dstH)

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// blendSourceOver composites one premultiplied source pixel over the
// destination pixel stored at px: out = src + dst*(255-srcA)/255.
func blendSourceOver(px []byte, sr, sg, sb, sa uint8) {
	if sa == 255 {
		px[0] = sr
		px[1] = sg
		px[2] = sb
		px[3] = sa
		return
	}

	ia := uint32(255 - sa)
	px[0] = sr + uint8((uint32(px[0])*ia+127)/255)
	px[1] = sg + uint8((uint32(px[1])*ia+127)/255)
	px[2] = sb + uint8((uint32(px[2])*ia+127)/255)
	px[3] = sa + uint8((uint32(px[3])*ia+127)/255)
}

func min4(a, b, c, d float64) float64 {
	return math.Min(math.Min(a, b), math.Min(c, d))
}

func max4(a, b, c, d float64) float64 {
	return math.Max(math.Max(a, b), math.Max(c, d))
}
