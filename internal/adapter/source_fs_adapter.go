// Package adapter contains the filesystem, parser and persistence adapters
// used by the lint workflow.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/gorule/internal/model"
)

// SourceFSAdapter hides filesystem access from the domain layer so the
// workflow can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects Go sources below roots. A root ending in /... is scanned
	// recursively. Test files are only included when includeTests is set.
	Get(roots []m.Path, includeTests bool) ([]m.Source, error)

	// Walk traverses root. When recursive is false it stays in root.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile replaces the contents of path, keeping its permissions.
	WriteFile(path m.Path, content []byte) error
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects Go source files for the provided roots.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, includeTests bool) ([]m.Source, error) {
	if len(roots) == 0 {
		roots = []m.Path{"."}
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	add := func(path string) error {
		source, ok, err := a.processFilePath(path, includeTests)
		if err != nil || !ok {
			return err
		}

		if _, exists := seen[string(source.Origin.Path)]; exists {
			return nil
		}

		seen[string(source.Origin.Path)] = struct{}{}
		sources = append(sources, source)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != rootPath && skipDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	content, err := a.ReadFile(path)
	if err != nil {
		return "", err
	}

	return hashContent(content), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile replaces the contents of path. New files are created 0644.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(string(path)); err == nil {
		perm = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, perm)
}

func hashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// skipDir follows the go tool: vendor, testdata and directories starting
// with . or _ hold no package sources.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

func (a *LocalSourceFSAdapter) processFilePath(path string, includeTests bool) (m.Source, bool, error) {
	if filepath.Ext(path) != ".go" {
		return m.Source{}, false, nil
	}

	if !includeTests && strings.HasSuffix(path, "_test.go") {
		return m.Source{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, false, err
	}

	content, err := a.ReadFile(m.Path(absPath))
	if err != nil {
		return m.Source{}, false, fmt.Errorf("read %s: %w", absPath, err)
	}

	// the package clause is enough here, syntax errors surface when linting
	var pkg string
	if file, err := parser.ParseFile(token.NewFileSet(), absPath, content, parser.PackageClauseOnly); err == nil && file.Name != nil {
		pkg = file.Name.Name
	}

	return m.Source{
		Origin:  &m.File{Path: m.Path(absPath), Hash: hashContent(content)},
		Package: pkg,
		Content: content,
	}, true, nil
}
