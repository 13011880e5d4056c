// Package model defines the data structures shared by rules, the rule engine
// and the lint host.
package model

// Path represents a file system path.
type Path string

// File identifies a source file on disk together with a content fingerprint.
type File struct {
	Path Path   `yaml:"path"`
	Hash string `yaml:"hash"`
}

// Source represents a Go source file selected for linting.
type Source struct {
	Origin  *File  `yaml:"origin"`
	Package string `yaml:"package,omitempty"`
	// Content is the file body as read from disk.
	Content []byte `yaml:"-"`
}
