package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"a2lkit/internal/diag"
	"a2lkit/internal/driver"
	"a2lkit/internal/modelfmt"
	"a2lkit/internal/ui"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] file.a2l",
	Short: "Extract the calibration model from description files",
	Long: `Extract runs the full pipeline and prints the typed model.
With --dir it processes every *.a2l file under a directory in parallel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("dir", "", "process every *.a2l file under this directory")
	extractCmd.Flags().String("format", "", "output format (summary|json), default summary")
	extractCmd.Flags().String("ui", "auto", "progress UI for --dir runs (auto|on|off)")
	extractCmd.Flags().Bool("no-cache", false, "bypass the extraction cache")
	extractCmd.Flags().Int("jobs", 0, "parallel workers for --dir runs, 0 = all CPUs")
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" && len(args) == 0 {
		return fmt.Errorf("need a file argument or --dir")
	}
	if dir != "" && len(args) > 0 {
		return fmt.Errorf("--dir and a file argument are mutually exclusive")
	}

	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	jobs, _ := cmd.Flags().GetInt("jobs")

	// Manifest defaults fill in whatever the flags left unset.
	start := dir
	if start == "" {
		start = "."
	}
	if manifest, ok, err := loadManifest(start); err != nil {
		return err
	} else if ok {
		if format == "" {
			format = manifest.Config.Extract.Format
		}
		if jobs == 0 {
			jobs = manifest.Config.Extract.Jobs
		}
		if manifest.Config.Extract.NoCache {
			noCache = true
		}
	}
	if format == "" {
		format = "summary"
	}
	if format != "summary" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("a2lkit")
		if err != nil {
			// A broken cache dir degrades to uncached operation.
			cache = nil
		}
	}

	if dir != "" {
		return runExtractDir(cmd, dir, format, maxDiagnostics, jobs, cache)
	}
	return runExtractFile(cmd, args[0], format, maxDiagnostics, cache)
}

func runExtractFile(cmd *cobra.Command, path, format string, maxDiagnostics int, cache *driver.DiskCache) error {
	res, err := driver.Extract(path, driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
	})
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	printDiagnostics(cmd, res.Bag, res.FileSet)
	if !res.Ok {
		return fmt.Errorf("extraction failed")
	}

	switch format {
	case "json":
		return modelfmt.ModelToJSON(os.Stdout, res.Model)
	default:
		modelfmt.Summary(os.Stdout, res.Model, useColor(cmd, os.Stdout))
		return nil
	}
}

func runExtractDir(cmd *cobra.Command, dir, format string, maxDiagnostics, jobs int, cache *driver.DiskCache) error {
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	useTUI := !quiet && format != "json" && shouldUseTUI(mode)

	opts := driver.DirOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	}

	var results []driver.DirResult
	if useTUI {
		files, err := driver.ListFiles(dir)
		if err != nil {
			return err
		}
		events := make(chan driver.Event, len(files))
		opts.Events = events

		var runErr error
		done := make(chan struct{})
		go func() {
			results, runErr = driver.ExtractDir(cmd.Context(), dir, opts)
			close(done)
		}()
		prog := tea.NewProgram(ui.NewProgressModel("extracting "+dir, files, events))
		_, uiErr := prog.Run()
		if uiErr != nil {
			// Keep draining so the workers never block on a full events
			// buffer; ExtractDir closes the channel when it finishes.
			go func() {
				for range events {
				}
			}()
		}
		<-done
		if uiErr != nil {
			return uiErr
		}
		if runErr != nil {
			return runErr
		}
	} else {
		results, err = driver.ExtractDir(cmd.Context(), dir, opts)
		if err != nil && err != context.Canceled {
			return err
		}
	}

	return reportDirResults(cmd, format, results)
}

func reportDirResults(cmd *cobra.Command, format string, results []driver.DirResult) error {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", res.Path, diag.IOLoadFileError.ID(), res.Err)
			failed++
			continue
		}
		if res.Bag.Len() > 0 {
			fmt.Fprintf(os.Stderr, "%s:\n", res.Path)
			printDiagnostics(cmd, res.Bag, res.FileSet)
		}
		if !res.Ok {
			failed++
			continue
		}
		switch format {
		case "json":
			if err := modelfmt.ModelToJSON(os.Stdout, res.Model); err != nil {
				return err
			}
		default:
			fmt.Fprintf(os.Stdout, "%s\n", res.Path)
			modelfmt.Summary(os.Stdout, res.Model, useColor(cmd, os.Stdout))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
