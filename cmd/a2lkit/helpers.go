package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"a2lkit/internal/diag"
	"a2lkit/internal/modelfmt"
	"a2lkit/internal/source"
)

func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return maxDiagnostics, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// printDiagnostics writes sorted diagnostics to stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	modelfmt.Pretty(os.Stderr, bag, fs, modelfmt.PrettyOpts{
		Color:    useColor(cmd, os.Stderr),
		PathMode: modelfmt.PathModeAuto,
		Context:  true,
	})
}
