// Package batch fans one pipeline out over many input files.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/internal/imageio"
)

// Config holds the shared settings for a batch run.
type Config struct {
	// Backend names the renderer backend each worker creates. Empty selects
	// the best available.
	Backend string

	// Pipeline is the operation chain. It holds no renderer state and is
	// shared across workers.
	Pipeline *fx.Pipeline

	// OutDir receives one output per input, named after the input file.
	OutDir string

	// Format overrides the output extension ("webp", "png", ...). Empty
	// keeps each input's own extension.
	Format string

	// Quality applies to JPEG outputs; 0 selects the encoder default.
	Quality int

	// Jobs is the worker count. Zero or negative selects GOMAXPROCS.
	Jobs int
}

// Result is the outcome of one input file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Summary totals a run.
type Summary struct {
	OK     int
	Failed int
}

// Run processes the inputs over a worker pool. Renderers are not safe for
// concurrent use, so each worker creates its own and reuses it across its
// share of the inputs. Results are returned in input order.
func Run(cfg Config, inputs []string) ([]Result, Summary) {
	workers := cfg.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]Result, len(inputs))
	var ok, failed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := ok.Load() + failed.Load()
				if p > 0 {
					fx.Logger().Info("batch progress",
						"processed", p,
						"total", len(inputs),
						"rate", float64(p)/time.Since(start).Seconds())
				}
			}
		}
	}()

	jobs := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := fx.NewRenderer(cfg.Backend)
			if err != nil {
				for idx := range jobs {
					results[idx] = Result{
						Input: inputs[idx],
						Err:   fmt.Errorf("create renderer: %w", err),
					}
					failed.Add(1)
				}
				return
			}
			defer r.Close()

			for idx := range jobs {
				res := processFile(r, cfg, inputs[idx])
				results[idx] = res
				if res.Err != nil {
					failed.Add(1)
					fx.Logger().Warn("batch input failed", "input", res.Input, "error", res.Err)
				} else {
					ok.Add(1)
				}
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(done)

	return results, Summary{OK: int(ok.Load()), Failed: int(failed.Load())}
}

// processFile runs the pipeline for one input on the worker's renderer.
func processFile(r fx.Renderer, cfg Config, input string) Result {
	out := outputPath(cfg, input)
	res := Result{Input: input, Output: out}

	img, err := imageio.Load(input)
	if err != nil {
		res.Err = err
		return res
	}
	if err := r.LoadImage(img); err != nil {
		res.Err = fmt.Errorf("load %s: %w", input, err)
		return res
	}
	if err := cfg.Pipeline.Run(r); err != nil {
		res.Err = fmt.Errorf("process %s: %w", input, err)
		return res
	}
	snap, err := r.Snapshot()
	if err != nil {
		res.Err = fmt.Errorf("snapshot %s: %w", input, err)
		return res
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		res.Err = err
		return res
	}
	if err := imageio.Save(out, snap, cfg.Quality); err != nil {
		res.Err = err
		return res
	}
	return res
}

// outputPath names the output after the input, in OutDir, with the
// configured format's extension when one is set.
func outputPath(cfg Config, input string) string {
	base := filepath.Base(input)
	if cfg.Format != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + cfg.Format
	}
	return filepath.Join(cfg.OutDir, base)
}
