package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdxforge/mdxforge"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List supported framework presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, fw := range mdxforge.Frameworks() {
			fmt.Fprintln(cmd.OutOrStdout(), fw)
		}
	},
}

func init() {
	rootCmd.AddCommand(frameworksCmd)
}
