package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fx"
)

const samplePipeline = `{
  "backend": "software",
  "operations": [
    {"name": "rotation", "options": {"degrees": 90}},
    {"name": "flip", "options": {"axis": "vertical"}},
    {"name": "colormatrix", "options": {"preset": "grayscale"}}
  ]
}`

func TestLoadAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(samplePipeline), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Backend != "software" {
		t.Errorf("Backend = %q, want %q", p.Backend, "software")
	}
	if len(p.Operations) != 3 {
		t.Fatalf("got %d operations, want 3", len(p.Operations))
	}

	pipe, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ops := pipe.Operations()
	wantNames := []string{"rotation", "flip", "colormatrix"}
	for i, want := range wantNames {
		if ops[i].Name() != want {
			t.Errorf("operation %d is %q, want %q", i, ops[i].Name(), want)
		}
	}

	rot, ok := ops[0].(*fx.Rotation)
	if !ok {
		t.Fatalf("operation 0 is %T, want *fx.Rotation", ops[0])
	}
	if rot.Degrees != 90 {
		t.Errorf("rotation degrees = %d, want 90", rot.Degrees)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"operations": [`)); err == nil {
		t.Error("Parse accepted truncated JSON")
	}
	if _, err := Parse([]byte(`{"operations": "rotation"}`)); err == nil {
		t.Error("Parse accepted a non-list operations field")
	}
}

func TestBuildUnknownOperation(t *testing.T) {
	p := Pipeline{Operations: []OperationSpec{{Name: "sharpen"}}}

	_, err := p.Build()
	if err == nil {
		t.Fatal("Build resolved an unregistered operation")
	}
	var notFound *fx.OperationNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error %v does not wrap OperationNotFoundError", err)
	}
}

func TestBuildUnnamedOperation(t *testing.T) {
	p := Pipeline{Operations: []OperationSpec{{Options: fx.Options{"degrees": 90}}}}

	if _, err := p.Build(); err == nil {
		t.Error("Build accepted an operation without a name")
	}
}

func TestBuildBadOptions(t *testing.T) {
	// 45.5 survives JSON decoding but is not a whole number.
	p, err := Parse([]byte(`{"operations": [{"name": "rotation", "options": {"degrees": 45.5}}]}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Build()
	if err == nil {
		t.Fatal("Build accepted a fractional rotation angle")
	}
	if !errors.Is(err, fx.ErrInvalidConfiguration) {
		t.Errorf("error %v does not wrap ErrInvalidConfiguration", err)
	}
}

// TestBuildValidatesEagerly checks the factory path: option type errors
// surface at Build, while domain errors (45 is an integer but not a
// quarter turn) wait for Validate.
func TestBuildValidatesEagerly(t *testing.T) {
	p, err := Parse([]byte(`{"operations": [{"name": "rotation", "options": {"degrees": 45}}]}`))
	if err != nil {
		t.Fatal(err)
	}

	pipe, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed on a type-valid angle: %v", err)
	}
	if err := pipe.Operations()[0].Validate(); !errors.Is(err, fx.ErrInvalidConfiguration) {
		t.Errorf("Validate error = %v, want ErrInvalidConfiguration", err)
	}
}
