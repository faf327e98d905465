// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

import (
	"fmt"
	"math"
)

// OpRotation is the registry name of the rotation operation.
const OpRotation = "rotation"

func init() {
	RegisterOperation(OpRotation, func(opts Options) (Operation, error) {
		degrees, err := opts.Int("degrees", 0)
		if err != nil {
			return nil, err
		}
		return &Rotation{Degrees: degrees}, nil
	})
}

// Rotation rotates the surface by a multiple of 90 degrees, clockwise for
// positive values. Rotations of 90 or 270 (canonically) swap the surface's
// width and height.
//
// Both execution paths produce byte-identical pixels: the GPU path runs a
// textured quad pass with the rotation matrix as a uniform, the surface path
// redraws the image through a rotated drawing context.
type Rotation struct {
	// Degrees is the rotation angle. Any multiple of 90 is valid, including
	// negative values and values of 360 and beyond; 0 when unset.
	Degrees int
}

// Name returns the registry identifier, "rotation".
func (op *Rotation) Name() string { return OpRotation }

// Validate fails with ErrInvalidConfiguration when Degrees is not a multiple
// of 90. It runs before any surface mutation.
func (op *Rotation) Validate() error {
	if op.Degrees%90 != 0 {
		return fmt.Errorf("%w: rotation degrees must be a multiple of 90, got %d",
			ErrInvalidConfiguration, op.Degrees)
	}
	return nil
}

// Render rotates the renderer's image in place.
func (op *Rotation) Render(r Renderer) error {
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

// renderGPU resizes the surface and scratch textures, runs the transform
// pass, and reallocates the sampled input texture last.
func (op *Rotation) renderGPU(r GPURenderer) error {
	angle := CanonicalAngle(op.Degrees)
	input := r.InputTexture()
	surf := r.Surface()
	width, height := surf.Width(), surf.Height()

	if SwapsDimensions(op.Degrees) {
		rs, ok := surf.(ResizableSurface)
		if !ok {
			return fmt.Errorf("fx: rotation by %d needs a resizable surface, %T is not", angle, surf)
		}
		width, height = height, width
		if err := rs.Resize(width, height); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}
		// The input texture keeps its pre-rotation content until the shader
		// has sampled it; every other tracked texture is re-populated by
		// this pass or by later stages.
		for _, tex := range r.Textures() {
			if tex == input {
				continue
			}
			if err := r.AllocateTexture(tex, width, height, tex.Format()); err != nil {
				return fmt.Errorf("reallocate texture %s: %w", tex.Label(), err)
			}
		}
	}

	m := RotationMatrix(angle)
	pass := ShaderPass{
		Vertex:   TransformVertexShader,
		Uniforms: []Uniform{{Name: "transform", Value: m.Mat3()}},
	}
	if err := r.RunShaderPass(pass); err != nil {
		return fmt.Errorf("rotation pass: %w", err)
	}

	// Deferred past the pass: the shader reads this texture at its
	// pre-rotation size. The pass promoted its output, so the handle now
	// names the demoted scratch texture and clearing it loses nothing.
	if err := r.AllocateTexture(input, width, height, input.Format()); err != nil {
		return fmt.Errorf("reallocate texture %s: %w", input.Label(), err)
	}
	return nil
}

// renderSurface draws a clone of the current surface into a freshly
// allocated, possibly dimension-swapped surface through a rotated context,
// then installs the result as the active surface.
func (op *Rotation) renderSurface(r SurfaceRenderer) error {
	angle := CanonicalAngle(op.Degrees)
	cur := r.Surface()
	width, height := cur.Width(), cur.Height()
	newW, newH := width, height
	if SwapsDimensions(op.Degrees) {
		newW, newH = height, width
	}

	prev, err := r.CloneSurface()
	if err != nil {
		return fmt.Errorf("clone surface: %w", err)
	}
	next, err := r.NewSurface(newW, newH)
	if err != nil {
		return fmt.Errorf("allocate %dx%d surface: %w", newW, newH, err)
	}
	cs, ok := next.(ContextSurface)
	if !ok {
		return fmt.Errorf("fx: surface %T has no drawing context", next)
	}

	// Rotate about the new surface's center and draw the old content so its
	// own center lands there.
	ctx := cs.Context()
	ctx.Save()
	ctx.Translate(float64(newW)/2, float64(newH)/2)
	ctx.Rotate(float64(angle) * math.Pi / 180)
	err = ctx.DrawSurface(prev, -float64(width)/2, -float64(height)/2)
	ctx.Restore()
	if err != nil {
		return fmt.Errorf("draw rotated copy: %w", err)
	}

	return r.SetSurface(next)
}
