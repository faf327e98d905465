package wgpu

import (
	_ "embed"
	"strings"

	"github.com/gogpu/fx"
)

// Default stages, substituted for empty pass stages.

//go:embed shaders/vertex_default.wgsl
var defaultVertexWGSL string

//go:embed shaders/fragment_default.wgsl
var defaultFragmentWGSL string

// composeModule builds the single WGSL module for a pass: the generated
// preamble, then the vertex and fragment stages. Identical passes compose to
// byte-identical source, which is what the pipeline cache keys on.
func composeModule(fields []uniformField, pass fx.ShaderPass) string {
	vertex := pass.Vertex
	if vertex == "" {
		vertex = defaultVertexWGSL
	}
	fragment := pass.Fragment
	if fragment == "" {
		fragment = defaultFragmentWGSL
	}

	var b strings.Builder
	b.WriteString(modulePreamble(fields))
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(vertex))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(fragment))
	b.WriteString("\n")
	return b.String()
}

// modulePreamble declares the vertex IO structs, the PassUniforms struct
// with the fields in pass order, and the three pass bindings.
func modulePreamble(fields []uniformField) string {
	var b strings.Builder
	b.WriteString(`struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex_coord: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coord: vec2<f32>,
}

struct PassUniforms {
`)
	for _, f := range fields {
		b.WriteString("    ")
		b.WriteString(f.name)
		b.WriteString(": ")
		b.WriteString(f.typ)
		b.WriteString(",\n")
	}
	b.WriteString(`}

@group(0) @binding(0) var<uniform> u: PassUniforms;
@group(0) @binding(1) var src_texture: texture_2d<f32>;
@group(0) @binding(2) var src_sampler: sampler;
`)
	return b.String()
}
