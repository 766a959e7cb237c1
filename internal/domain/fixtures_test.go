package domain

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// writeCrate lays files out under a fresh directory and returns a crate whose
// root is src/lib.rs.
func writeCrate(t *testing.T, name string, files map[string]string) m.Crate {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return m.Crate{
		Name: name,
		Dir:  m.Path(dir),
		Root: m.Path(filepath.Join(dir, "src", "lib.rs")),
	}
}

func newTestBundler() *Bundler {
	return NewBundler(adapter.NewLocalSourceFSAdapter(), adapter.NewTreeSitterRustAdapter(), log.New(io.Discard))
}

// recordingSelector answers from fixed tables and remembers every question.
type recordingSelector struct {
	modules       map[string]m.ModuleSelection
	dropImports   map[string]bool
	moduleCalls   []string
	importCalls   []string
	moduleSources []m.Path
}

func (r *recordingSelector) SelectModule(ident string, from m.Path) (m.ModuleSelection, error) {
	r.moduleCalls = append(r.moduleCalls, ident)
	r.moduleSources = append(r.moduleSources, from)

	return r.modules[ident], nil
}

func (r *recordingSelector) SelectImport(text string) (bool, error) {
	r.importCalls = append(r.importCalls, text)

	return !r.dropImports[text], nil
}
