package adapter

import (
	"errors"
	"fmt"
	"path/filepath"

	m "github.com/mouse-blink/cherrypick/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// ErrManifest is returned for Cargo.toml files that cannot describe a library.
var ErrManifest = errors.New("invalid manifest")

const defaultLibRoot = "src/lib.rs"

// ManifestAdapter reads crate metadata from Cargo.toml.
type ManifestAdapter interface {
	// ReadCrate loads the manifest in dir and returns the crate it declares.
	ReadCrate(dir m.Path) (m.Crate, error)
}

type cargoManifest struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib *struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	} `toml:"lib"`
}

// CargoManifestAdapter parses Cargo.toml with go-toml.
type CargoManifestAdapter struct {
	fs SourceFSAdapter
}

// NewCargoManifestAdapter constructs a CargoManifestAdapter reading through fs.
func NewCargoManifestAdapter(fs SourceFSAdapter) *CargoManifestAdapter {
	return &CargoManifestAdapter{fs: fs}
}

// ReadCrate honours [lib] name and path overrides and falls back to the
// package name and src/lib.rs.
func (a *CargoManifestAdapter) ReadCrate(dir m.Path) (m.Crate, error) {
	manifestPath := a.fs.JoinPath(string(dir), ManifestFile)

	data, err := a.fs.ReadFile(manifestPath)
	if err != nil {
		return m.Crate{}, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return m.Crate{}, fmt.Errorf("%w: %s: %w", ErrManifest, manifestPath, err)
	}

	if manifest.Package == nil || manifest.Package.Name == "" {
		return m.Crate{}, fmt.Errorf("%w: %s has no [package] name (virtual workspace manifests are not supported)", ErrManifest, manifestPath)
	}

	name := manifest.Package.Name
	root := defaultLibRoot

	if manifest.Lib != nil {
		if manifest.Lib.Name != "" {
			name = manifest.Lib.Name
		}

		if manifest.Lib.Path != "" {
			root = manifest.Lib.Path
		}
	}

	return m.Crate{
		Name: m.CrateIdent(name),
		Dir:  dir,
		Root: a.fs.JoinPath(string(dir), filepath.FromSlash(root)),
	}, nil
}
