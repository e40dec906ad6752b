package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"a2lkit/internal/driver"
	"a2lkit/internal/modelfmt"
)

var infoCmd = &cobra.Command{
	Use:   "info [flags] file.a2l",
	Short: "Show a summary of a description file",
	Long:  `Info extracts the model and prints record counts without the full content`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Extract(args[0], driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	printDiagnostics(cmd, res.Bag, res.FileSet)
	if !res.Ok {
		return fmt.Errorf("extraction failed")
	}

	modelfmt.Summary(os.Stdout, res.Model, useColor(cmd, os.Stdout))
	if res.Bag.Len() > 0 {
		fmt.Fprintf(os.Stdout, "  %d diagnostic(s)\n", res.Bag.Len())
	}
	return nil
}
