package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"a2lkit/internal/driver"
	"a2lkit/internal/modelfmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.a2l",
	Short: "Tokenize a description file",
	Long:  `Tokenize breaks a description file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		printDiagnostics(cmd, result.Bag, result.FileSet)
	}

	switch format {
	case "pretty":
		return modelfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return modelfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
