package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/fx"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered operations and renderers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Operations:")
		for _, name := range fx.OperationNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Renderers (priority order):")
		for _, name := range fx.RendererNames() {
			state := "unavailable"
			if fx.RendererAvailable(name) {
				state = "available"
			}
			fmt.Printf("  %-10s %s\n", name, state)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
