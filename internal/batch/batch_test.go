package batch

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fx"
	_ "github.com/gogpu/fx/backend/software"
	"github.com/gogpu/fx/internal/imageio"
)

// writeInputs drops numbered PNG files into a temp dir and returns their
// paths.
func writeInputs(t *testing.T, n, w, h int) []string {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, "in"+string(rune('a'+i))+".png")
		if err := imageio.Save(paths[i], img, 0); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func rotate90() *fx.Pipeline {
	return fx.NewPipeline(&fx.Rotation{Degrees: 90})
}

func TestRunProcessesAll(t *testing.T) {
	inputs := writeInputs(t, 3, 20, 10)
	outDir := t.TempDir()

	results, sum := Run(Config{
		Backend:  "software",
		Pipeline: rotate90(),
		OutDir:   outDir,
		Jobs:     2,
	}, inputs)

	if sum.OK != 3 || sum.Failed != 0 {
		t.Fatalf("summary = %+v, want 3 ok, 0 failed", sum)
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("input %d failed: %v", i, res.Err)
		}
		if res.Input != inputs[i] {
			t.Errorf("result %d is for %s, want %s (input order)", i, res.Input, inputs[i])
		}

		out, err := imageio.Load(res.Output)
		if err != nil {
			t.Fatalf("loading output %s: %v", res.Output, err)
		}
		if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 20 {
			t.Errorf("output %s is %v, want 10x20", res.Output, out.Bounds())
		}
	}
}

func TestRunRecordsFailures(t *testing.T) {
	inputs := writeInputs(t, 2, 8, 8)
	inputs = append(inputs, filepath.Join(t.TempDir(), "missing.png"))

	results, sum := Run(Config{
		Backend:  "software",
		Pipeline: rotate90(),
		OutDir:   t.TempDir(),
		Jobs:     4,
	}, inputs)

	if sum.OK != 2 || sum.Failed != 1 {
		t.Fatalf("summary = %+v, want 2 ok, 1 failed", sum)
	}
	if results[2].Err == nil {
		t.Error("missing input produced no error")
	}
}

func TestRunFormatOverride(t *testing.T) {
	inputs := writeInputs(t, 1, 6, 4)
	outDir := t.TempDir()

	results, sum := Run(Config{
		Backend:  "software",
		Pipeline: rotate90(),
		OutDir:   outDir,
		Format:   "webp",
		Jobs:     1,
	}, inputs)

	if sum.OK != 1 {
		t.Fatalf("summary = %+v, want 1 ok", sum)
	}
	if filepath.Ext(results[0].Output) != ".webp" {
		t.Fatalf("output %s does not carry the overridden extension", results[0].Output)
	}
	if _, err := os.Stat(results[0].Output); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRunUnknownBackend(t *testing.T) {
	inputs := writeInputs(t, 2, 4, 4)

	results, sum := Run(Config{
		Backend:  "metal",
		Pipeline: rotate90(),
		OutDir:   t.TempDir(),
	}, inputs)

	if sum.Failed != 2 || sum.OK != 0 {
		t.Fatalf("summary = %+v, want all failed", sum)
	}
	for _, res := range results {
		if res.Err == nil {
			t.Error("result carries no error for an unknown backend")
		}
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Config{OutDir: "/out"}
	if got := outputPath(cfg, "/data/img.png"); got != filepath.Join("/out", "img.png") {
		t.Errorf("outputPath = %q", got)
	}

	cfg.Format = "webp"
	if got := outputPath(cfg, "/data/img.png"); got != filepath.Join("/out", "img.webp") {
		t.Errorf("outputPath with format override = %q", got)
	}
}
