// Package image provides the raster buffer and affine drawing core for the
// software backend.
//
// All buffers hold premultiplied RGBA, 8 bits per channel, the working
// format of the pipeline. Conversions to and from the standard library's
// image types happen at the package boundary.
package image

import (
	"errors"
	stdimage "image"
	"image/draw"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is the size of one premultiplied RGBA pixel.
const bytesPerPixel = 4

// ImageBuf is a premultiplied RGBA image buffer.
//
// Pixel data lives in a contiguous byte slice with optional stride for
// memory alignment. Channel bytes never exceed the alpha byte.
//
// Thread safety: ImageBuf is safe for concurrent read access. Writes require
// external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewImageBuf creates a transparent-black buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	stride := width * bytesPerPixel
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// FromRaw creates an ImageBuf over existing premultiplied RGBA data without
// copying. The caller must ensure data remains valid for the lifetime of the
// ImageBuf. Stride must be at least width*4.
func FromRaw(data []byte, width, height, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*bytesPerPixel {
		return nil, ErrInvalidStride
	}
	if len(data) < stride*height {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:stride*height],
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// FromImage converts any image into a premultiplied RGBA buffer.
// *image.RGBA sources (already premultiplied) are copied row by row; other
// types go through the color model.
func FromImage(img stdimage.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if rgba, ok := img.(*stdimage.RGBA); ok {
		rowLen := buf.width * bytesPerPixel
		for y := 0; y < buf.height; y++ {
			src := rgba.Pix[rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			copy(buf.data[y*buf.stride:y*buf.stride+rowLen], src[:rowLen])
		}
		return buf, nil
	}

	dst := &stdimage.RGBA{Pix: buf.data, Stride: buf.stride, Rect: stdimage.Rect(0, 0, buf.width, buf.height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf, nil
}

// ToRGBA copies the buffer into a standard library image. image.RGBA shares
// the premultiplied-alpha convention, so this is a straight byte copy.
func (b *ImageBuf) ToRGBA() *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, b.width, b.height))
	rowLen := b.width * bytesPerPixel
	for y := 0; y < b.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowLen], b.data[y*b.stride:y*b.stride+rowLen])
	}
	return img
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		stride: b.stride,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice. Modifying it modifies the image.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*bytesPerPixel]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*bytesPerPixel
}

// GetRGBA returns the premultiplied color at (x, y).
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return 0, 0, 0, 0
	}
	return b.data[offset], b.data[offset+1], b.data[offset+2], b.data[offset+3]
}

// SetRGBA sets the premultiplied color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	b.data[offset] = r
	b.data[offset+1] = g
	b.data[offset+2] = bl
	b.data[offset+3] = a
	return nil
}

// Clear sets all pixels to transparent black.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Fill sets every pixel to the given premultiplied RGBA value.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	if len(b.data) == 0 {
		return
	}

	row := b.data[:b.width*bytesPerPixel]
	for x := 0; x < len(row); x += bytesPerPixel {
		row[x] = r
		row[x+1] = g
		row[x+2] = bl
		row[x+3] = a
	}
	for y := 1; y < b.height; y++ {
		copy(b.data[y*b.stride:y*b.stride+len(row)], row)
	}
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}
