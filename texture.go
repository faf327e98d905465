// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

// TextureFormat identifies the pixel layout of a GPU texture.
type TextureFormat int

const (
	// TextureFormatRGBA8 is 8-bit RGBA, the working format for all
	// built-in operations.
	TextureFormatRGBA8 TextureFormat = iota

	// TextureFormatBGRA8 is 8-bit BGRA (swapchain order on most platforms).
	TextureFormatBGRA8

	// TextureFormatR8 is single-channel 8-bit (masks, coverage).
	TextureFormatR8
)

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8:
		return "RGBA8"
	case TextureFormatBGRA8:
		return "BGRA8"
	case TextureFormatR8:
		return "R8"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the per-pixel byte count of the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatRGBA8, TextureFormatBGRA8:
		return 4
	case TextureFormatR8:
		return 1
	default:
		return 0
	}
}

// Texture is a GPU texture buffer tracked by a GPU-capable renderer.
//
// Textures are owned by the renderer: they are created before an operation
// runs and persist after it returns. Operations may reallocate them through
// GPURenderer.AllocateTexture but never destroy them outright.
type Texture interface {
	// Label returns the debug label the renderer assigned at creation.
	Label() string

	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the texture's pixel format.
	Format() TextureFormat
}
