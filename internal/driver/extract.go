package driver

import (
	"a2lkit/internal/diag"
	"a2lkit/internal/extract"
	"a2lkit/internal/model"
	"a2lkit/internal/source"
)

type ExtractResult struct {
	FileSet *source.FileSet
	File    *source.File
	Model   *model.Model
	Bag     *diag.Bag
	// Ok is false when a structural error or a missing PROJECT/MODULE
	// prevented building the model. Extraction diagnostics leave Ok true.
	Ok bool
	// Cached is true when the model came from the disk cache and no
	// lexing or tree building ran at all.
	Cached bool
}

type Options struct {
	MaxDiagnostics int
	// Cache, when non-nil, is consulted by content hash before parsing
	// and updated after a clean run.
	Cache *DiskCache
}

// Extract runs the full pipeline over one file: load, lex, build the block
// tree, assemble the typed model. The returned error covers I/O only; all
// content problems land in the Bag.
func Extract(path string, opts Options) (*ExtractResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return extractLoaded(fs, fs.Get(fileID), opts), nil
}

// ExtractText runs the pipeline over in-memory content, bypassing the cache.
func ExtractText(name, text string, maxDiagnostics int) *ExtractResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, []byte(text))
	return extractLoaded(fs, fs.Get(fileID), Options{MaxDiagnostics: maxDiagnostics})
}

func extractLoaded(fs *source.FileSet, file *source.File, opts Options) *ExtractResult {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(file.Hash, &payload); err == nil && hit &&
			payload.Schema == diskCacheSchemaVersion {
			m := payload.Model
			return &ExtractResult{
				FileSet: fs,
				File:    file,
				Model:   &m,
				Bag:     diag.NewBag(opts.MaxDiagnostics),
				Ok:      true,
				Cached:  true,
			}
		}
	}

	tr := buildTree(tokenizeFile(fs, file, opts.MaxDiagnostics))
	res := &ExtractResult{
		FileSet: tr.FileSet,
		File:    tr.File,
		Bag:     tr.Bag,
	}
	if !tr.Ok {
		return res
	}

	m, ok := extract.Assemble(tr.Root, diag.BagReporter{Bag: tr.Bag})
	res.Model = m
	res.Ok = ok

	// Only clean runs are cached; a cached model must be trusted without
	// replaying its diagnostics.
	if ok && opts.Cache != nil && !tr.Bag.HasErrors() {
		_ = opts.Cache.Put(file.Hash, &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        file.Path,
			ContentHash: file.Hash,
			Model:       *m,
		})
	}
	return res
}
