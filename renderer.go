// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import (
	"image"

	"github.com/gogpu/gpucontext"
)

// DeviceHandle is an opaque handle to a GPU device/queue pair, compatible
// with other gogpu libraries. GPU renderers expose theirs so applications
// can share one device across libraries.
type DeviceHandle = gpucontext.DeviceProvider

// Renderer is the contract every execution backend satisfies. Operations
// receive a Renderer and inspect it for one of the two execution
// capabilities, GPURenderer or SurfaceRenderer; the base interface carries
// only what the pipeline and the I/O layer need.
//
// A renderer's surface/texture set is owned exclusively by the pipeline
// during a run; renderers need no internal locking for it.
type Renderer interface {
	// Identifier returns the registry name of the backend ("software",
	// "wgpu"). Used for selection and logging, never for path dispatch.
	Identifier() string

	// Surface returns the active surface. Never nil after LoadImage.
	Surface() Surface

	// LoadImage replaces the renderer's current image content and resizes
	// the surface to the image bounds.
	LoadImage(img image.Image) error

	// Snapshot reads back the current image content as RGBA. The result is
	// a copy; for GPU renderers this forces a device round-trip.
	Snapshot() (*image.RGBA, error)

	// Close releases all backend resources. Idempotent.
	Close() error
}

// GPURenderer is the shader/texture execution capability.
//
// The renderer tracks a small set of texture buffers; one of them is
// designated the current input texture and holds the image content between
// operations. RunShaderPass samples the current input, renders into a
// tracked scratch texture at the surface's dimensions, and promotes that
// output to the current-input designation. The texture that was sampled
// stays tracked (demoted to scratch), which is what allows operations to
// reallocate it after the pass without losing the result.
type GPURenderer interface {
	Renderer

	// Device returns the underlying device handle.
	Device() DeviceHandle

	// InputTexture returns the texture currently holding the image.
	InputTexture() Texture

	// Textures returns every texture buffer the renderer tracks, the
	// current input included.
	Textures() []Texture

	// AllocateTexture reallocates a tracked texture to the given size and
	// format. Contents are undefined afterwards (cleared on first use as a
	// render target). Fails for textures this renderer does not track.
	AllocateTexture(t Texture, width, height int, format TextureFormat) error

	// RunShaderPass executes one full-surface render pass as described by
	// pass, then promotes the output texture to current input.
	RunShaderPass(pass ShaderPass) error
}

// SurfaceRenderer is the CPU surface/context execution capability.
type SurfaceRenderer interface {
	Renderer

	// NewSurface allocates a fresh, transparent surface of the given size.
	// The surface is not active until SetSurface installs it.
	NewSurface(width, height int) (Surface, error)

	// CloneSurface returns a snapshot copy of the active surface's pixels.
	CloneSurface() (Surface, error)

	// SetSurface replaces the active surface. The previous surface is
	// released; its lifetime ends here unless the caller retained it.
	SetSurface(s Surface) error
}
