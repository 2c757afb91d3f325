// Package workdir provides scoped temporary working directories that
// are removed on every exit path, including panics.
package workdir

import (
	"fmt"
	"os"
	"sync"
)

// Dir is a temporary directory that exists until Close.
type Dir struct {
	Path string
	once sync.Once
	err  error
}

// New creates a temporary directory with the given name pattern.
func New(pattern string) (*Dir, error) {
	path, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("cannot create working directory: %w", err)
	}
	return &Dir{Path: path}, nil
}

// Close removes the directory and everything in it. Safe to call more
// than once.
func (d *Dir) Close() error {
	d.once.Do(func() {
		d.err = os.RemoveAll(d.Path)
	})
	return d.err
}

// With runs fn with a scoped temporary directory. The directory is
// removed when fn returns or panics.
func With(pattern string, fn func(path string) error) error {
	dir, err := New(pattern)
	if err != nil {
		return err
	}
	defer dir.Close()

	return fn(dir.Path)
}
