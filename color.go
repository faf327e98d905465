// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import (
	"fmt"
	"math"
)

// OpColorMatrix is the registry name of the color matrix operation.
const OpColorMatrix = "colormatrix"

// Color matrix presets.
const (
	PresetGrayscale = "grayscale"
	PresetSepia     = "sepia"
	PresetInvert    = "invert"
	PresetBright    = "brightness"
	PresetSaturate  = "saturate"
	PresetContrast  = "contrast"
	PresetHueRotate = "hue-rotate"
)

func init() {
	RegisterOperation(OpColorMatrix, func(opts Options) (Operation, error) {
		preset, err := opts.String("preset", "")
		if err != nil {
			return nil, err
		}
		amount, err := opts.Float("amount", 1)
		if err != nil {
			return nil, err
		}
		return &ColorMatrix{Preset: preset, Amount: amount}, nil
	})
}

// ColorMatrix applies a 4x5 color transformation to every pixel:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column is a bias in [0,255] channel units. Coefficients apply to
// straight-alpha values; premultiplied storage is unpremultiplied around the
// transform. The GPU path evaluates the same matrix in a fragment shader,
// matching the software result within unorm rounding.
type ColorMatrix struct {
	// Preset selects the matrix. The empty preset is the identity.
	Preset string

	// Amount parameterizes brightness/saturate/contrast (1 = unchanged)
	// and hue-rotate (degrees). Ignored by the fixed presets.
	Amount float64
}

// Name returns the registry identifier, "colormatrix".
func (op *ColorMatrix) Name() string { return OpColorMatrix }

// Validate fails with ErrInvalidConfiguration for an unknown preset.
func (op *ColorMatrix) Validate() error {
	switch op.Preset {
	case "", PresetGrayscale, PresetSepia, PresetInvert,
		PresetBright, PresetSaturate, PresetContrast, PresetHueRotate:
		return nil
	default:
		return fmt.Errorf("%w: unknown color preset %q", ErrInvalidConfiguration, op.Preset)
	}
}

// Render recolors the renderer's image in place. The GPU path runs a
// fragment pass; every other renderer is served through Snapshot/LoadImage.
func (op *ColorMatrix) Render(r Renderer) error {
	if err := op.Validate(); err != nil {
		return err
	}
	if g, ok := r.(GPURenderer); ok {
		return op.renderGPU(g)
	}
	return op.renderSnapshot(r)
}

func (op *ColorMatrix) renderGPU(r GPURenderer) error {
	m := op.matrix()

	// WGSL mat4x4 columns are the per-channel coefficient columns of the
	// 4x4 part; the bias column scales to [0,1] unorm units.
	var mat [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			mat[col*4+row] = m[row*5+col]
		}
	}
	offset := [4]float32{m[4] / 255, m[9] / 255, m[14] / 255, m[19] / 255}

	pass := ShaderPass{
		Fragment: colorMatrixFragmentShader,
		Uniforms: []Uniform{
			{Name: "color_matrix", Value: mat},
			{Name: "color_offset", Value: offset},
		},
	}
	if err := r.RunShaderPass(pass); err != nil {
		return fmt.Errorf("colormatrix pass: %w", err)
	}
	return nil
}

func (op *ColorMatrix) renderSnapshot(r Renderer) error {
	img, err := r.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	m := op.matrix()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4 : x*4+4]

			// Un-premultiply to straight-alpha [0,255] channel values.
			pr, pg, pb := float32(px[0]), float32(px[1]), float32(px[2])
			a := float32(px[3])
			var red, green, blue float32
			if a > 0 {
				red = pr * 255 / a
				green = pg * 255 / a
				blue = pb * 255 / a
			}

			newR := m[0]*red + m[1]*green + m[2]*blue + m[3]*a + m[4]
			newG := m[5]*red + m[6]*green + m[7]*blue + m[8]*a + m[9]
			newB := m[10]*red + m[11]*green + m[12]*blue + m[13]*a + m[14]
			newA := m[15]*red + m[16]*green + m[17]*blue + m[18]*a + m[19]

			newA = clampChannel(newA)
			factor := newA / 255
			px[0] = uint8(clampChannel(newR)*factor + 0.5)
			px[1] = uint8(clampChannel(newG)*factor + 0.5)
			px[2] = uint8(clampChannel(newB)*factor + 0.5)
			px[3] = uint8(newA + 0.5)
		}
	}

	return r.LoadImage(img)
}

func clampChannel(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// matrix resolves the preset into its 4x5 row-major matrix.
func (op *ColorMatrix) matrix() [20]float32 {
	amount := float32(op.Amount)
	switch op.Preset {
	case PresetGrayscale:
		return saturationMatrix(0)
	case PresetSaturate:
		return saturationMatrix(amount)
	case PresetBright:
		return [20]float32{
			amount, 0, 0, 0, 0,
			0, amount, 0, 0, 0,
			0, 0, amount, 0, 0,
			0, 0, 0, 1, 0,
		}
	case PresetContrast:
		// (channel - 128) * amount + 128
		offset := 128 * (1 - amount)
		return [20]float32{
			amount, 0, 0, 0, offset,
			0, amount, 0, 0, offset,
			0, 0, amount, 0, offset,
			0, 0, 0, 1, 0,
		}
	case PresetSepia:
		return [20]float32{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		}
	case PresetInvert:
		return [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		}
	case PresetHueRotate:
		return hueRotateMatrix(op.Amount)
	default:
		return [20]float32{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 1, 0,
		}
	}
}

// saturationMatrix blends between luminance (0) and identity (1) using
// Rec. 709 weights.
func saturationMatrix(factor float32) [20]float32 {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return [20]float32{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// hueRotateMatrix rotates hue by the given angle in degrees, approximated
// by rotation in YIQ space.
func hueRotateMatrix(degrees float64) [20]float32 {
	rad := degrees * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)
	return [20]float32{
		lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
		lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
		lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
		0, 0, 0, 1, 0,
	}
}

// colorMatrixFragmentShader evaluates the 4x5 matrix per fragment in
// straight-alpha space, mirroring the software path.
const colorMatrixFragmentShader = `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let c = textureSample(src_texture, src_sampler, in.tex_coord);
    var rgb = c.rgb;
    if (c.a > 0.0) {
        rgb = rgb / c.a;
    }
    let v = u.color_matrix * vec4<f32>(rgb, c.a) + u.color_offset;
    let outc = clamp(v, vec4<f32>(0.0), vec4<f32>(1.0));
    return vec4<f32>(outc.rgb * outc.a, outc.a);
}
`
