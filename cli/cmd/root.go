// Package cmd provides the Cobra commands for the mdxforge CLI.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "mdxforge",
	Short: "mdxforge - Bundle MDX documents into evaluable JavaScript",
	Long: `mdxforge bundles an MDX or markdown document, together with the local
modules it imports, into one self-contained piece of JavaScript.

Framework packages are left external and rewritten against a global
binding table, so the produced code runs wherever the framework runtime
is put in scope.

Get started:
  mdxforge build post.mdx      Bundle a document
  mdxforge frameworks          List supported framework presets`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if debug {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug output")
}
