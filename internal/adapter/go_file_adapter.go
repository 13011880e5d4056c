package adapter

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// GoFileAdapter parses Go sources for the linter.
type GoFileAdapter interface {
	// Parse builds an AST, comments included, into fileSet.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)
}

// LocalGoFileAdapter provides a GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse reports every syntax error, not only the first ten.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments|parser.AllErrors|parser.SkipObjectResolution)
}
