// Package adapter contains filesystem, parsing and manifest adapters for the
// cherrypick CLI.
package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/cherrypick/internal/model"
)

// ManifestFile is the name of the file that marks a crate directory.
const ManifestFile = "Cargo.toml"

// ErrCrateNotFound is returned when no Cargo.toml exists above a start path.
var ErrCrateNotFound = errors.New("crate not found")

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when walking a crate. It hides direct `os` access so the bundling
// logic can be tested against fixture trees.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// IsFile reports whether path exists and is a regular file.
	IsFile(path m.Path) bool

	// FindCrateRoot searches for Cargo.toml walking up the directory tree,
	// starting at startPath itself when it is a directory.
	FindCrateRoot(startPath m.Path) (m.Path, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - paths are derived from the crate being bundled
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// IsFile reports whether path names an existing regular file.
func (a *LocalSourceFSAdapter) IsFile(path m.Path) bool {
	info, err := a.FileInfo(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// FindCrateRoot searches for Cargo.toml walking up the directory tree.
func (a *LocalSourceFSAdapter) FindCrateRoot(startPath m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", err
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if a.IsFile(m.Path(filepath.Join(dir, ManifestFile))) {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s not found in %s or any parent directory", ErrCrateNotFound, ManifestFile, startPath)
		}

		dir = parent
	}
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
