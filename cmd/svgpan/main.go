package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "svgpan",
		Short: "svgpan - pan/zoom tooling for browser-rendered SVG diagrams",
		Long: `svgpan is a Go/WASM pan and zoom engine for SVG diagrams rendered in
the browser, with a development server and demo page scaffolding for
trying it out against your own documents.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newDevCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInitCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
