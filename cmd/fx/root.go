package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/fx"
)

var (
	verbose     bool
	logJSON     bool
	backendName string
)

var rootCmd = &cobra.Command{
	Use:   "fx",
	Short: "Apply image-processing pipelines to image files",
	Long: `fx runs image-processing pipelines (rotation, flip, color matrix) over
image files, on the GPU when one is available and in software otherwise.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{Level: level}
		var handler slog.Handler
		if logJSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		logger := slog.New(handler)
		slog.SetDefault(logger)
		fx.SetLogger(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "Renderer backend (default: best available)")
}
