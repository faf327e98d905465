package fx

import (
	"errors"
	"reflect"
	"testing"
)

func TestFlipValidate(t *testing.T) {
	tests := []struct {
		axis    string
		wantErr bool
	}{
		{FlipHorizontal, false},
		{FlipVertical, false},
		{"", true},
		{"diagonal", true},
		{"HORIZONTAL", true},
	}
	for _, tt := range tests {
		err := (&Flip{Axis: tt.axis}).Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Flip{%q}.Validate() error = %v, wantErr %v", tt.axis, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
		}
	}
}

func TestFlipMirrorMatrices(t *testing.T) {
	h := (&Flip{Axis: FlipHorizontal}).mirror()
	if h != Scale(-1, 1) {
		t.Errorf("horizontal mirror = %+v, want Scale(-1,1)", h)
	}

	v := (&Flip{Axis: FlipVertical}).mirror()
	if v != Scale(1, -1) {
		t.Errorf("vertical mirror = %+v, want Scale(1,-1)", v)
	}
}

// TestFlipGPUPass checks the GPU path is a single pass with the reflection
// matrix and no resizing or reallocation at all.
func TestFlipGPUPass(t *testing.T) {
	r := newFakeGPURenderer(100, 50)
	if err := (&Flip{Axis: FlipHorizontal}).Render(r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if want := []string{"pass"}; !reflect.DeepEqual(r.trace, want) {
		t.Fatalf("call order = %v, want %v", r.trace, want)
	}

	pass := r.passes[0]
	if pass.Vertex != TransformVertexShader {
		t.Errorf("pass vertex stage is not the transform shader")
	}
	if len(pass.Uniforms) != 1 || pass.Uniforms[0].Name != "transform" {
		t.Fatalf("pass uniforms = %+v, want single %q uniform", pass.Uniforms, "transform")
	}
	want := [9]float32{-1, 0, 0, 0, 1, 0, 0, 0, 1}
	if got := pass.Uniforms[0].Value.([9]float32); got != want {
		t.Errorf("transform = %v, want %v", got, want)
	}
}

func TestFlipSurfaceProtocol(t *testing.T) {
	r := newFakeCPURenderer(100, 50)
	if err := (&Flip{Axis: FlipVertical}).Render(r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(r.created) != 1 {
		t.Fatalf("created %d surfaces, want 1", len(r.created))
	}
	next := r.created[0]
	if next.width != 100 || next.height != 50 {
		t.Errorf("new surface = %dx%d, want unchanged 100x50", next.width, next.height)
	}

	want := []string{
		"save",
		"translate:50,25",
		"scale:1,-1",
		"draw:100x50@-50,-25",
		"restore",
	}
	if !reflect.DeepEqual(next.ctx.trace, want) {
		t.Errorf("context trace = %v, want %v", next.ctx.trace, want)
	}
	if r.active != next {
		t.Errorf("active surface not replaced")
	}
}

func TestFlipUnsupportedRenderer(t *testing.T) {
	err := (&Flip{Axis: FlipHorizontal}).Render(fakeBareRenderer{})
	if !errors.Is(err, ErrUnsupportedRenderer) {
		t.Fatalf("Render() error = %v, want ErrUnsupportedRenderer", err)
	}
}

// TestFlipInvolution applies the same flip twice on the GPU fake and checks
// the two passes carry identical transforms, the algebraic core of the
// flip-twice-restores property.
func TestFlipInvolution(t *testing.T) {
	for _, axis := range []string{FlipHorizontal, FlipVertical} {
		op := &Flip{Axis: axis}
		m := op.mirror().Multiply(op.mirror())
		if !m.IsIdentity() {
			t.Errorf("%s mirror applied twice = %+v, want identity", axis, m)
		}

		r := newFakeGPURenderer(8, 8)
		if err := op.Render(r); err != nil {
			t.Fatalf("first Render() error = %v", err)
		}
		if err := op.Render(r); err != nil {
			t.Fatalf("second Render() error = %v", err)
		}
		if len(r.passes) != 2 || !reflect.DeepEqual(r.passes[0], r.passes[1]) {
			t.Errorf("%s: flip passes differ: %+v", axis, r.passes)
		}
	}
}
