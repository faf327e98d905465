// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

// Uniform is a named shader parameter for a ShaderPass.
//
// Accepted value kinds and their WGSL counterparts:
//
//	float32      f32
//	[2]float32   vec2<f32>
//	[4]float32   vec4<f32>
//	[9]float32   mat3x3<f32> (column-major, see Matrix.Mat3)
//	[16]float32  mat4x4<f32> (column-major)
//
// Any other kind fails the pass before anything is submitted.
type Uniform struct {
	Name  string
	Value any
}

// ShaderPass describes one full-surface render pass for a GPU renderer.
//
// The renderer composes a single WGSL module from the two stage sources plus
// a generated preamble that declares the uniform struct (field order follows
// the Uniforms slice, prefixed by the renderer-supplied extent), the source
// texture/sampler bindings, and the vertex IO structs:
//
//	struct VertexInput {
//	    @location(0) position:  vec2<f32>,  // y-down normalized quad space
//	    @location(1) tex_coord: vec2<f32>,
//	}
//	struct VertexOutput {
//	    @builtin(position) clip_position: vec4<f32>,
//	    @location(0) tex_coord: vec2<f32>,
//	}
//	struct PassUniforms { extent: vec2<f32>, ... }
//	@group(0) @binding(0) var<uniform> u: PassUniforms;
//	@group(0) @binding(1) var src_texture: texture_2d<f32>;
//	@group(0) @binding(2) var src_sampler: sampler;
//
// A stage source must define vs_main / fs_main against those declarations.
// An empty stage selects the renderer's default: a unit quad passthrough for
// the vertex stage, a plain texture sample for the fragment stage.
type ShaderPass struct {
	Vertex   string
	Fragment string
	Uniforms []Uniform
}

// TransformVertexShader is the vertex stage used by geometric operations
// (rotation, flip). It applies a mat3x3 uniform named "transform" to each
// quad vertex in y-down normalized coordinates and flips y when emitting the
// clip position, so one affine matrix produces the same visual result as the
// software backend's y-down raster transform.
//
// The source is a fixed constant: renderers cache compiled pipelines by
// composed module source, so any change here is a new pipeline identity.
const TransformVertexShader = `
@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let p = u.transform * vec3<f32>(in.position, 1.0);
    out.clip_position = vec4<f32>(p.x, -p.y, 0.0, 1.0);
    out.tex_coord = in.tex_coord;
    return out;
}
`
