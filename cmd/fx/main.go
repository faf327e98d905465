// Command fx applies image-processing pipelines to image files.
package main

import (
	"os"

	_ "github.com/gogpu/fx/backend/software"
	_ "github.com/gogpu/fx/backend/wgpu"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
