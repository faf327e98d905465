package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fx"
)

// Tracked textures rotate through every role: pass input (sampled), pass
// output (render attachment), snapshot source, and upload destination.
const textureUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// Texture is a tracked GPU texture buffer: the HAL texture, its sampling
// view, and the metadata operations inspect. The struct identity is stable
// across reallocation, so operation code can hold a handle through
// AllocateTexture.
type Texture struct {
	label  string
	width  int
	height int
	format fx.TextureFormat

	tex  hal.Texture
	view hal.TextureView
}

// Label returns the debug label assigned at creation.
func (t *Texture) Label() string { return t.label }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture's pixel format.
func (t *Texture) Format() fx.TextureFormat { return t.format }

var _ fx.Texture = (*Texture)(nil)

// halFormat maps the portable format to its HAL counterpart.
func halFormat(f fx.TextureFormat) (gputypes.TextureFormat, error) {
	switch f {
	case fx.TextureFormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case fx.TextureFormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm, nil
	case fx.TextureFormatR8:
		return gputypes.TextureFormatR8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("wgpu: unsupported texture format %s", f)
	}
}

// newTexture creates a tracked texture and its view.
func newTexture(device hal.Device, label string, width, height int, format fx.TextureFormat) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid texture dimensions %dx%d", width, height)
	}
	hf, err := halFormat(format)
	if err != nil {
		return nil, err
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        hf,
		Usage:         textureUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        hf,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	return &Texture{
		label:  label,
		width:  width,
		height: height,
		format: format,
		tex:    tex,
		view:   view,
	}, nil
}

// allocate replaces the HAL texture and view with freshly created ones at
// the new size and format. The old contents are gone; the first render pass
// into the texture clears it.
func (t *Texture) allocate(device hal.Device, width, height int, format fx.TextureFormat) error {
	next, err := newTexture(device, t.label, width, height, format)
	if err != nil {
		return err
	}
	t.destroy(device)
	t.width = next.width
	t.height = next.height
	t.format = next.format
	t.tex = next.tex
	t.view = next.view
	return nil
}

// destroy releases the HAL texture and view. Safe to call twice.
func (t *Texture) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// released reports whether the HAL resources are gone.
func (t *Texture) released() bool { return t.tex == nil }
