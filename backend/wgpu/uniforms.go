package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/fx"
)

// uniformField is one member of the generated PassUniforms struct: the WGSL
// declaration and the member's data, already padded to the member size.
type uniformField struct {
	name  string
	typ   string
	align int
	data  []float32
}

// fieldFor maps a uniform value to its WGSL member. Matrices arrive flat in
// column-major order; mat3 columns gain the vec4 stride padding WGSL
// mandates in uniform buffers.
func fieldFor(u fx.Uniform) (uniformField, error) {
	switch v := u.Value.(type) {
	case float32:
		return uniformField{name: u.Name, typ: "f32", align: 4, data: []float32{v}}, nil
	case [2]float32:
		return uniformField{name: u.Name, typ: "vec2<f32>", align: 8, data: v[:]}, nil
	case [4]float32:
		return uniformField{name: u.Name, typ: "vec4<f32>", align: 16, data: v[:]}, nil
	case [9]float32:
		data := make([]float32, 12)
		for col := 0; col < 3; col++ {
			copy(data[col*4:col*4+3], v[col*3:col*3+3])
		}
		return uniformField{name: u.Name, typ: "mat3x3<f32>", align: 16, data: data}, nil
	case [16]float32:
		return uniformField{name: u.Name, typ: "mat4x4<f32>", align: 16, data: v[:]}, nil
	default:
		return uniformField{}, fmt.Errorf("wgpu: uniform %q has unsupported value type %T", u.Name, u.Value)
	}
}

// passFields resolves a pass's uniforms into the PassUniforms members: the
// renderer-supplied extent first, then the pass uniforms in slice order.
// Field order is part of the composed module source, and with it part of the
// pipeline cache key.
func passFields(extent [2]float32, uniforms []fx.Uniform) ([]uniformField, error) {
	fields := make([]uniformField, 0, len(uniforms)+1)
	fields = append(fields, uniformField{name: "extent", typ: "vec2<f32>", align: 8, data: extent[:]})

	seen := map[string]struct{}{"extent": {}}
	for _, u := range uniforms {
		if u.Name == "" {
			return nil, fmt.Errorf("wgpu: uniform with empty name")
		}
		if _, dup := seen[u.Name]; dup {
			return nil, fmt.Errorf("wgpu: duplicate uniform %q", u.Name)
		}
		seen[u.Name] = struct{}{}

		f, err := fieldFor(u)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// fieldOffsets returns each member's byte offset per WGSL uniform buffer
// layout rules and the total struct size rounded up to 16 bytes.
func fieldOffsets(fields []uniformField) ([]int, int) {
	offsets := make([]int, len(fields))
	end := 0
	for i, f := range fields {
		off := alignUp(end, f.align)
		offsets[i] = off
		end = off + len(f.data)*4
	}
	return offsets, alignUp(end, 16)
}

// packFields lays the members out into uniform buffer bytes.
func packFields(fields []uniformField) []byte {
	offsets, size := fieldOffsets(fields)
	buf := make([]byte, size)
	for i, f := range fields {
		off := offsets[i]
		for j, v := range f.data {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v))
		}
	}
	return buf
}

func alignUp(v, a int) int {
	return (v + a - 1) / a * a
}
