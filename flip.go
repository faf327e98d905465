// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import "fmt"

// OpFlip is the registry name of the flip operation.
const OpFlip = "flip"

// Flip axes.
const (
	FlipHorizontal = "horizontal" // mirror across the vertical axis
	FlipVertical   = "vertical"   // mirror across the horizontal axis
)

func init() {
	RegisterOperation(OpFlip, func(opts Options) (Operation, error) {
		axis, err := opts.String("axis", FlipHorizontal)
		if err != nil {
			return nil, err
		}
		return &Flip{Axis: axis}, nil
	})
}

// Flip mirrors the surface across one axis. Dimensions never change, so
// neither path resizes anything; applying the same flip twice restores the
// original image.
type Flip struct {
	// Axis is FlipHorizontal or FlipVertical; horizontal when unset.
	Axis string
}

// Name returns the registry identifier, "flip".
func (op *Flip) Name() string { return OpFlip }

// Validate fails with ErrInvalidConfiguration for an unknown axis.
func (op *Flip) Validate() error {
	switch op.Axis {
	case FlipHorizontal, FlipVertical:
		return nil
	default:
		return fmt.Errorf("%w: flip axis must be %q or %q, got %q",
			ErrInvalidConfiguration, FlipHorizontal, FlipVertical, op.Axis)
	}
}

// Render mirrors the renderer's image in place.
func (op *Flip) Render(r Renderer) error {
	if err := op.Validate(); err != nil {
		return err
	}
	switch t := r.(type) {
	case GPURenderer:
		return op.renderGPU(t)
	case SurfaceRenderer:
		return op.renderSurface(t)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedRenderer, r.Identifier())
	}
}

// mirror returns the axis's reflection matrix.
func (op *Flip) mirror() Matrix {
	if op.Axis == FlipVertical {
		return Scale(1, -1)
	}
	return Scale(-1, 1)
}

func (op *Flip) renderGPU(r GPURenderer) error {
	pass := ShaderPass{
		Vertex:   TransformVertexShader,
		Uniforms: []Uniform{{Name: "transform", Value: op.mirror().Mat3()}},
	}
	if err := r.RunShaderPass(pass); err != nil {
		return fmt.Errorf("flip pass: %w", err)
	}
	return nil
}

func (op *Flip) renderSurface(r SurfaceRenderer) error {
	cur := r.Surface()
	width, height := cur.Width(), cur.Height()

	prev, err := r.CloneSurface()
	if err != nil {
		return fmt.Errorf("clone surface: %w", err)
	}
	next, err := r.NewSurface(width, height)
	if err != nil {
		return fmt.Errorf("allocate %dx%d surface: %w", width, height, err)
	}
	cs, ok := next.(ContextSurface)
	if !ok {
		return fmt.Errorf("fx: surface %T has no drawing context", next)
	}

	m := op.mirror()
	ctx := cs.Context()
	ctx.Save()
	ctx.Translate(float64(width)/2, float64(height)/2)
	ctx.Scale(m.A, m.E)
	err = ctx.DrawSurface(prev, -float64(width)/2, -float64(height)/2)
	ctx.Restore()
	if err != nil {
		return fmt.Errorf("draw mirrored copy: %w", err)
	}

	return r.SetSurface(next)
}
