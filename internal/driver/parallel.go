package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"a2lkit/internal/diag"
	"a2lkit/internal/model"
	"a2lkit/internal/source"
)

type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports per-file progress during a directory run.
type Event struct {
	Path   string
	Status Status
	Cached bool
}

// DirResult is the outcome for one file of a directory run.
type DirResult struct {
	Path    string
	FileSet *source.FileSet
	Model   *model.Model
	Bag     *diag.Bag
	Ok      bool
	Cached  bool
	// Err is set when the file could not be read at all; FileSet and Bag
	// are nil then.
	Err error
}

type DirOptions struct {
	MaxDiagnostics int
	// Jobs bounds worker goroutines; <= 0 means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	// Events, when non-nil, receives progress updates. The channel is
	// closed when the run finishes.
	Events chan<- Event
}

// ListFiles returns every *.a2l file under dir, sorted for deterministic
// processing order.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".a2l") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExtractDir runs the extraction pipeline over every description file in a
// directory, in parallel. Per-file failures never abort the run; only
// context cancellation does.
func ExtractDir(ctx context.Context, dir string, opts DirOptions) ([]DirResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if opts.Events != nil {
		defer close(opts.Events)
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, so the slice needs no mutex.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{Path: path, Status: StatusWorking})

			res, err := Extract(path, Options{
				MaxDiagnostics: opts.MaxDiagnostics,
				Cache:          opts.Cache,
			})
			if err != nil {
				results[i] = DirResult{Path: path, Err: err}
				emit(opts.Events, Event{Path: path, Status: StatusError})
				return nil
			}

			results[i] = DirResult{
				Path:    path,
				FileSet: res.FileSet,
				Model:   res.Model,
				Bag:     res.Bag,
				Ok:      res.Ok,
				Cached:  res.Cached,
			}
			status := StatusDone
			if !res.Ok || res.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Events, Event{Path: path, Status: status, Cached: res.Cached})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
