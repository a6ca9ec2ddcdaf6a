// Package main provides the entry point for the wikigrab CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wikigrab.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikigrab",
		Short: "Download Wikipedia articles and their Commons images",
		Long: `wikigrab downloads a Wikipedia article as a plain-text document and
fetches related images from Wikimedia Commons at the best available
resolution.

Run grab with no arguments for an interactive session, or pass the
article URL directly.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGrabCmd())
	cmd.AddCommand(NewNarrateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
