package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	lru "github.com/hashicorp/golang-lru/v2"
)

// pipelineCacheSize bounds how many compiled pipeline bundles stay alive.
// A pipeline run with a fixed operation set composes a handful of distinct
// modules, well below the bound.
const pipelineCacheSize = 16

// vertexStride is the quad vertex size: position vec2 + tex_coord vec2.
const vertexStride = 16

type pipelineKey struct {
	source string
	format gputypes.TextureFormat
}

// pipelineBundle is one compiled pass pipeline together with the layouts it
// was built from. Destroyed as a unit on eviction.
type pipelineBundle struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// pipelineCache caches compiled pass pipelines in an LRU keyed by composed
// module source and target format. The renderer fence-waits every pass, so
// an evicted bundle is never still in flight.
type pipelineCache struct {
	device hal.Device
	lru    *lru.Cache[pipelineKey, *pipelineBundle]
}

func newPipelineCache(device hal.Device) (*pipelineCache, error) {
	c := &pipelineCache{device: device}
	l, err := lru.NewWithEvict(pipelineCacheSize, func(_ pipelineKey, b *pipelineBundle) {
		c.destroyBundle(b)
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

// get returns the bundle for the source/format pair, compiling on a miss.
// The composed source is validated with naga before a module reaches the
// device.
func (c *pipelineCache) get(source string, format gputypes.TextureFormat) (*pipelineBundle, error) {
	key := pipelineKey{source: source, format: format}
	if b, ok := c.lru.Get(key); ok {
		return b, nil
	}
	if _, err := naga.Compile(source); err != nil {
		return nil, fmt.Errorf("wgpu: shader validation: %w", err)
	}
	b, err := c.build(source, format)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, b)
	return b, nil
}

func (c *pipelineCache) build(source string, format gputypes.TextureFormat) (*pipelineBundle, error) {
	b := &pipelineBundle{}

	shader, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fx_pass_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("compile pass shader: %w", err)
	}
	b.shader = shader

	// Bind group layout:
	//   Binding 0: PassUniforms (uniform buffer, vertex+fragment)
	//   Binding 1: source texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "fx_pass_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		c.destroyBundle(b)
		return nil, fmt.Errorf("create pass bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fx_pass_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		c.destroyBundle(b)
		return nil, fmt.Errorf("create pass pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	// No blending: the pass clears its target and the quad covers every
	// pixel, so fragment output replaces the attachment byte for byte.
	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fx_pass_pipeline",
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers:    passVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     nil,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		c.destroyBundle(b)
		return nil, fmt.Errorf("create pass pipeline: %w", err)
	}
	b.pipeline = pipeline

	return b, nil
}

// passVertexLayout returns the quad vertex layout. Matches VertexInput in
// the module preamble:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
func passVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
			},
		},
	}
}

// destroyBundle releases bundle resources in reverse creation order.
func (c *pipelineCache) destroyBundle(b *pipelineBundle) {
	if b == nil {
		return
	}
	if b.pipeline != nil {
		c.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		c.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		c.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shader != nil {
		c.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
}

// purge evicts and destroys every cached bundle.
func (c *pipelineCache) purge() {
	c.lru.Purge()
}
