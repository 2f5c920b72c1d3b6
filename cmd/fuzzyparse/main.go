/*
Command fuzzyparse loads a precompiled automaton table and runs the
fuzzy lexer / LR(k) driver over a text file, printing the resulting
syntax tree and any recovered errors.
*/
package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuzzyparse",
		Short: "Run a precompiled fuzzy LR(k) parser over a text file",
	}

	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
