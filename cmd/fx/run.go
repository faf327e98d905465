package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/internal/batch"
	"github.com/gogpu/fx/internal/config"
	"github.com/gogpu/fx/internal/imageio"
)

var (
	pipelinePath string
	degrees      int
	outPath      string
	outDir       string
	outFormat    string
	jpegQuality  int
	jobs         int
)

var runCmd = &cobra.Command{
	Use:   "run [flags] INPUT [INPUT...]",
	Short: "Run a pipeline over image files",
	Long: `Run decodes each input image, applies the pipeline, and encodes the
result. A single input writes to --out; multiple inputs fan out over a
worker pool into --out-dir, one file per input.

The pipeline comes from a JSON description (--pipeline) or from the
--degrees shorthand, which rotates by a multiple of 90.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&pipelinePath, "pipeline", "p", "", "Pipeline description (JSON)")
	runCmd.Flags().IntVar(&degrees, "degrees", 0, "Rotate by a multiple of 90 (shorthand pipeline)")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (single input)")
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (multiple inputs)")
	runCmd.Flags().StringVar(&outFormat, "format", "", "Output format override for --out-dir (png, webp, ...)")
	runCmd.Flags().IntVar(&jpegQuality, "quality", 0, "JPEG output quality (1-100)")
	runCmd.Flags().IntVar(&jobs, "jobs", 0, "Worker count for --out-dir (default GOMAXPROCS)")
	runCmd.MarkFlagsMutuallyExclusive("pipeline", "degrees")
	runCmd.MarkFlagsMutuallyExclusive("out", "out-dir")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	backend := backendName

	var pipe *fx.Pipeline
	switch {
	case pipelinePath != "":
		desc, err := config.Load(pipelinePath)
		if err != nil {
			return err
		}
		pipe, err = desc.Build()
		if err != nil {
			return err
		}
		if backend == "" {
			backend = desc.Backend
		}
	case cmd.Flags().Changed("degrees"):
		pipe = fx.NewPipeline(&fx.Rotation{Degrees: degrees})
	default:
		return errors.New("nothing to run: use --pipeline or --degrees")
	}

	if len(args) > 1 || outDir != "" {
		return runBatch(pipe, backend, args)
	}
	return runSingle(pipe, backend, args[0])
}

func runSingle(pipe *fx.Pipeline, backend, input string) error {
	if outPath == "" {
		return errors.New("single input needs --out")
	}

	img, err := imageio.Load(input)
	if err != nil {
		return err
	}

	r, err := fx.NewRenderer(backend)
	if err != nil {
		return err
	}
	defer r.Close()
	slog.Debug("renderer selected", "backend", r.Identifier())

	if err := r.LoadImage(img); err != nil {
		return err
	}

	start := time.Now()
	if err := pipe.Run(r); err != nil {
		return err
	}

	snap, err := r.Snapshot()
	if err != nil {
		return err
	}
	if err := imageio.Save(outPath, snap, jpegQuality); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%dx%d, %s, %s)\n",
		outPath, snap.Bounds().Dx(), snap.Bounds().Dy(),
		r.Identifier(), time.Since(start).Round(time.Millisecond))
	return nil
}

func runBatch(pipe *fx.Pipeline, backend string, inputs []string) error {
	if outDir == "" {
		return errors.New("multiple inputs need --out-dir")
	}

	start := time.Now()
	_, sum := batch.Run(batch.Config{
		Backend:  backend,
		Pipeline: pipe,
		OutDir:   outDir,
		Format:   outFormat,
		Quality:  jpegQuality,
		Jobs:     jobs,
	}, inputs)

	fmt.Printf("Processed %d file(s): %d ok, %d failed (%s)\n",
		len(inputs), sum.OK, sum.Failed, time.Since(start).Round(time.Millisecond))
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", sum.Failed, len(inputs))
	}
	return nil
}
