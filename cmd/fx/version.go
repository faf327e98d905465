package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/fx"
)

// version is overridable at link time (-ldflags "-X main.version=...").
var version = fx.Version

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fx version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fx version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
