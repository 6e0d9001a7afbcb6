package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "oopsd",
	Short: "oopsd - HTTP server with fault interception",
	Long: `Oopsd is an HTTP server built around a fault interception pipeline.

Failures in request handlers are classified, assigned a correlation id,
logged with full context, checked against known failure signatures, and
rendered as a JSON error page. Background goroutines spawned through the
worker runtime get the same treatment instead of killing the process.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
