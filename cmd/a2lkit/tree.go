package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"a2lkit/internal/driver"
	"a2lkit/internal/modelfmt"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.a2l",
	Short: "Print the block tree of a description file",
	Long:  `Tree lexes a description file and prints its nested block structure`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	result, err := driver.BuildTree(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if !result.Ok {
		return fmt.Errorf("structural errors, no tree built")
	}

	modelfmt.FormatTree(os.Stdout, result.Root)
	return nil
}
