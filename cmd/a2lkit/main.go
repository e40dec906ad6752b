package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"a2lkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "a2lkit",
	Short: "ASAP2 description file toolkit",
	Long:  `a2lkit lexes A2L description files, builds their block tree and extracts a typed calibration model`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
