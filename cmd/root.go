package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "staffear",
	Short: "A TUI musical ear trainer",
	Long: `staffear is a Terminal User Interface (TUI) ear trainer built with Bubbletea.

It plays chords of one or more notes and asks you to place what you heard
on a treble-clef staff, with the mouse or the keyboard. Results are scored
per note and tracked across sessions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
