package driver

import (
	"a2lkit/internal/block"
	"a2lkit/internal/diag"
	"a2lkit/internal/source"
	"a2lkit/internal/token"
)

type TreeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Root    *block.Node
	Bag     *diag.Bag
	// Ok is false after a structural error; Root is nil then.
	Ok bool
}

// BuildTree lexes a file and folds the token stream into the block tree.
func BuildTree(path string, maxDiagnostics int) (*TreeResult, error) {
	tr, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return buildTree(tr), nil
}

// BuildTreeText is BuildTree over in-memory content.
func BuildTreeText(name, text string, maxDiagnostics int) *TreeResult {
	return buildTree(TokenizeText(name, text, maxDiagnostics))
}

func buildTree(tr *TokenizeResult) *TreeResult {
	root, ok := block.Build(tr.File, tr.Tokens, diag.BagReporter{Bag: tr.Bag})
	return &TreeResult{
		FileSet: tr.FileSet,
		File:    tr.File,
		Tokens:  tr.Tokens,
		Root:    root,
		Bag:     tr.Bag,
		Ok:      ok,
	}
}
