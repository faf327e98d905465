package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fx"
	intimage "github.com/gogpu/fx/internal/image"
)

// Name is the registry identifier of this backend.
const Name = "wgpu"

// Priority is the backend's registry priority. GPU backends sit above
// software so auto-selection prefers hardware when it is available.
const Priority = 100

// readbackAlign is the WebGPU row alignment for texture-to-buffer copies.
const readbackAlign = 256

// submitTimeout bounds how long a pass or readback waits on the GPU fence.
const submitTimeout = 5 * time.Second

// ErrRendererClosed is returned by renderer methods after Close.
var ErrRendererClosed = errors.New("wgpu: renderer is closed")

func init() {
	fx.RegisterRenderer(Name, Priority, func() (fx.Renderer, error) {
		return New()
	}, Available)
}

// Available reports whether a HAL backend is linked in. Device creation can
// still fail at New when the runtime has no usable adapter.
func Available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// Renderer executes operations as GPU render passes. It tracks two texture
// buffers: the current input holds the image between passes, the scratch
// receives pass output and is promoted to input afterwards.
//
// Renderers are not safe for concurrent use; each pipeline run owns its
// renderer exclusively.
type Renderer struct {
	dev       *gpuDevice
	surface   *Surface
	input     *Texture
	scratch   *Texture
	sampler   hal.Sampler
	quad      hal.Buffer
	pipelines *pipelineCache
	closed    bool
}

// New creates a renderer on its own device. The renderer starts with 1x1
// transparent content; LoadImage replaces it.
func New() (*Renderer, error) {
	dev, err := openDevice()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(dev)
	if err != nil {
		dev.close()
		return nil, err
	}
	fx.Logger().Info("wgpu: renderer ready", "adapter", dev.adapterName)
	return r, nil
}

// NewWithDevice creates a renderer on a shared device. The provider must
// expose the HAL pair through HalDevice()/HalQueue(); Close detaches from
// the device without destroying it.
func NewWithDevice(provider fx.DeviceHandle) (*Renderer, error) {
	if provider == nil {
		return nil, errors.New("wgpu: nil device provider")
	}
	dev, err := adoptDevice(provider)
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(dev)
	if err != nil {
		dev.close()
		return nil, err
	}
	return r, nil
}

func newRenderer(dev *gpuDevice) (*Renderer, error) {
	r := &Renderer{dev: dev, surface: &Surface{width: 1, height: 1}}

	pipelines, err := newPipelineCache(dev.device)
	if err != nil {
		return nil, err
	}
	r.pipelines = pipelines

	sampler, err := dev.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "fx_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	r.sampler = sampler

	quad, err := r.createAndUploadBuffer("fx_quad", quadVertices(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.release()
		return nil, err
	}
	r.quad = quad

	input, err := newTexture(dev.device, "fx_tex_a", 1, 1, fx.TextureFormatRGBA8)
	if err != nil {
		r.release()
		return nil, err
	}
	r.input = input

	scratch, err := newTexture(dev.device, "fx_tex_b", 1, 1, fx.TextureFormatRGBA8)
	if err != nil {
		r.release()
		return nil, err
	}
	r.scratch = scratch

	r.uploadPixels(r.input, make([]byte, 4), 1, 1)
	return r, nil
}

// Identifier returns the backend name, "wgpu".
func (r *Renderer) Identifier() string {
	return Name
}

// Surface returns the active surface.
func (r *Renderer) Surface() fx.Surface {
	if r.surface == nil {
		return nil
	}
	return r.surface
}

// Device returns a handle to the renderer's HAL pair for sharing with other
// gogpu libraries.
func (r *Renderer) Device() fx.DeviceHandle {
	if r.closed {
		return nil
	}
	return deviceHandle{dev: r.dev}
}

// InputTexture returns the texture currently holding the image.
func (r *Renderer) InputTexture() fx.Texture {
	if r.input == nil {
		return nil
	}
	return r.input
}

// Textures returns both tracked texture buffers, the current input first.
func (r *Renderer) Textures() []fx.Texture {
	if r.closed {
		return nil
	}
	return []fx.Texture{r.input, r.scratch}
}

// LoadImage uploads the image into the input texture and resizes the
// surface and both tracked textures to the image bounds. Pixels are stored
// premultiplied, matching what Snapshot returns.
func (r *Renderer) LoadImage(img image.Image) error {
	if r.closed {
		return ErrRendererClosed
	}
	if img == nil {
		return errors.New("wgpu: nil image")
	}
	buf, err := intimage.FromImage(img)
	if err != nil {
		return err
	}
	w, h := buf.Width(), buf.Height()
	if err := r.input.allocate(r.dev.device, w, h, fx.TextureFormatRGBA8); err != nil {
		return err
	}
	if err := r.scratch.allocate(r.dev.device, w, h, fx.TextureFormatRGBA8); err != nil {
		return err
	}
	r.uploadPixels(r.input, buf.Data(), w, h)
	r.surface.width = w
	r.surface.height = h
	return nil
}

// AllocateTexture reallocates a tracked texture in place. The handle keeps
// its identity; contents are undefined until the next pass renders into it
// or an upload fills it.
func (r *Renderer) AllocateTexture(t fx.Texture, width, height int, format fx.TextureFormat) error {
	if r.closed {
		return ErrRendererClosed
	}
	tex, ok := t.(*Texture)
	if !ok {
		return fmt.Errorf("wgpu: renderer does not track %T textures", t)
	}
	if tex != r.input && tex != r.scratch {
		return fmt.Errorf("wgpu: renderer does not track texture %s", tex.Label())
	}
	if tex.released() {
		return fmt.Errorf("wgpu: texture %s has been released", tex.Label())
	}
	return tex.allocate(r.dev.device, width, height, format)
}

// RunShaderPass composes the pass module, renders the input texture through
// it into the scratch texture at the surface's dimensions, waits for the
// GPU, and promotes the output to current input.
func (r *Renderer) RunShaderPass(pass fx.ShaderPass) error {
	if r.closed {
		return ErrRendererClosed
	}
	w, h := r.surface.width, r.surface.height
	target := r.scratch
	if target.width != w || target.height != h {
		return fmt.Errorf("wgpu: render target %s is %dx%d, surface is %dx%d; reallocate before the pass",
			target.label, target.width, target.height, w, h)
	}

	fields, err := passFields([2]float32{float32(w), float32(h)}, pass.Uniforms)
	if err != nil {
		return err
	}
	source := composeModule(fields, pass)
	targetFormat, err := halFormat(target.format)
	if err != nil {
		return err
	}
	bundle, err := r.pipelines.get(source, targetFormat)
	if err != nil {
		return err
	}

	uniformData := packFields(fields)
	uniformBuf, err := r.createAndUploadBuffer("fx_pass_uniforms", uniformData,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer r.dev.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "fx_pass_bind",
		Layout: bundle.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uint64(len(uniformData)),
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: r.input.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("create pass bind group: %w", err)
	}
	defer r.dev.device.DestroyBindGroup(bindGroup)

	encoder, err := r.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "fx_pass_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fx_pass"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "fx_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       target.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	rp.SetPipeline(bundle.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, r.quad, 0)
	rp.Draw(6, 1, 0, 0)
	rp.End()

	// The output is sampled by the next pass; Vulkan needs the explicit
	// transition out of the render-attachment layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageTextureBinding,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.dev.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return err
	}

	// Promote the output; the sampled texture is demoted to scratch.
	r.input, r.scratch = r.scratch, r.input

	fx.Logger().Debug("wgpu: pass complete", "width", w, "height", h)
	return nil
}

// Snapshot reads the input texture back as premultiplied RGBA. Rows travel
// through a staging buffer padded to the 256-byte copy alignment and are
// un-padded on the way out.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrRendererClosed
	}
	src := r.input
	if src.format == fx.TextureFormatR8 {
		return nil, fmt.Errorf("wgpu: cannot snapshot %s texture %s", src.format, src.label)
	}
	w, h := src.width, src.height

	bytesPerRow := alignUp(w*4, readbackAlign)
	bufSize := uint64(bytesPerRow) * uint64(h)
	staging, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_snapshot_staging",
		Size:  bufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.dev.device.DestroyBuffer(staging)

	encoder, err := r.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "fx_snapshot_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fx_snapshot"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// In and out of the copy-source layout around the copy; between
	// operations every tracked texture sits in the sampled layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: src.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageTextureBinding,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(src.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(bytesPerRow),
			RowsPerImage: uint32(h),
		},
		TextureBase: hal.ImageCopyTexture{Texture: src.tex, MipLevel: 0},
		Size:        hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: src.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageTextureBinding,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.dev.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, bufSize)
	if err := r.dev.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], readback[y*bytesPerRow:])
	}
	if src.format == fx.TextureFormatBGRA8 {
		swapRB(img.Pix)
	}
	return img, nil
}

// Close releases textures, cached pipelines, and the device when owned.
// Idempotent.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.release()
	r.surface = nil
	r.dev.close()
	return nil
}

// release frees renderer-owned GPU resources. The device itself is the
// caller's to close.
func (r *Renderer) release() {
	if r.pipelines != nil {
		r.pipelines.purge()
		r.pipelines = nil
	}
	if r.quad != nil {
		r.dev.device.DestroyBuffer(r.quad)
		r.quad = nil
	}
	if r.sampler != nil {
		r.dev.device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.input != nil {
		r.input.destroy(r.dev.device)
		r.input = nil
	}
	if r.scratch != nil {
		r.scratch.destroy(r.dev.device)
		r.scratch = nil
	}
}

// submitAndWait submits one command buffer and blocks until its fence
// signals.
func (r *Renderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := r.dev.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.dev.device.DestroyFence(fence)

	if err := r.dev.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.dev.device.Wait(fence, 1, submitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and writes data into it.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.dev.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// uploadPixels writes packed RGBA rows into a texture.
func (r *Renderer) uploadPixels(t *Texture, data []byte, width, height int) {
	r.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(width * 4), RowsPerImage: uint32(height)},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
}

// quadVertices returns the full-surface quad as two triangles in y-down
// normalized space with matching texture coordinates: 6 vertices of
// (position, tex_coord).
func quadVertices() []byte {
	verts := [6][4]float32{
		{-1, -1, 0, 0}, // top-left
		{1, -1, 1, 0},  // top-right
		{-1, 1, 0, 1},  // bottom-left
		{1, -1, 1, 0},  // top-right
		{1, 1, 1, 1},   // bottom-right
		{-1, 1, 0, 1},  // bottom-left
	}
	buf := make([]byte, len(verts)*vertexStride)
	for i, v := range verts {
		off := i * vertexStride
		for j, f := range v {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// swapRB converts BGRA rows to RGBA in place.
func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

var (
	_ fx.Renderer    = (*Renderer)(nil)
	_ fx.GPURenderer = (*Renderer)(nil)
)
