package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

const (
	rustFileExt     = ".rs"
	dirRootFilename = "mod.rs"
)

// rootFilenames own the directory they live in; any other file owns the
// subdirectory named after its stem.
var rootFilenames = map[string]bool{
	"lib.rs":        true,
	"main.rs":       true,
	dirRootFilename: true,
}

// ModuleResolver maps `mod name;` declarations to their backing files.
type ModuleResolver struct {
	fs adapter.SourceFSAdapter
}

// NewModuleResolver creates a ModuleResolver checking candidates through fs.
func NewModuleResolver(fs adapter.SourceFSAdapter) *ModuleResolver {
	return &ModuleResolver{fs: fs}
}

// Resolve returns the file backing module ident declared in current. The
// crate root file owns its directory whatever its name.
func (r *ModuleResolver) Resolve(current m.Path, ident string, crateRoot bool) (m.Path, error) {
	flat, nested := r.Candidates(current, ident, crateRoot)
	flatOK, nestedOK := r.fs.IsFile(flat), r.fs.IsFile(nested)

	switch {
	case flatOK && !nestedOK:
		return flat, nil
	case nestedOK && !flatOK:
		return nested, nil
	case !flatOK:
		return "", fmt.Errorf("%w: module `%s`: neither %s nor %s exists", ErrModuleNotFound, ident, flat, nested)
	default:
		return "", fmt.Errorf("%w: module `%s`: both %s and %s exist", ErrAmbiguousModule, ident, flat, nested)
	}
}

// Candidates returns the <name>.rs and <name>/mod.rs paths checked by Resolve.
func (r *ModuleResolver) Candidates(current m.Path, ident string, crateRoot bool) (flat, nested m.Path) {
	dir := filepath.Dir(string(current))
	base := filepath.Base(string(current))

	if !crateRoot && !rootFilenames[base] {
		dir = filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
	}

	name := strings.TrimPrefix(ident, "r#")

	return r.fs.JoinPath(dir, name+rustFileExt), r.fs.JoinPath(dir, name, dirRootFilename)
}
