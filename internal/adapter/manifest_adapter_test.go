package adapter

import (
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/cherrypick/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCargoManifestAdapter_ReadCrate(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantName string
		wantRoot string
	}{
		{
			name:     "package name with hyphens",
			manifest: "[package]\nname = \"my-lib\"\nversion = \"0.1.0\"\n",
			wantName: "my_lib",
			wantRoot: filepath.Join("src", "lib.rs"),
		},
		{
			name:     "lib section overrides",
			manifest: "[package]\nname = \"my-lib\"\n\n[lib]\nname = \"short\"\npath = \"lib/root.rs\"\n",
			wantName: "short",
			wantRoot: filepath.Join("lib", "root.rs"),
		},
		{
			name:     "dependencies are ignored",
			manifest: "[package]\nname = \"kyopro\"\n\n[dependencies]\nitertools = \"0.10\"\n",
			wantName: "kyopro",
			wantRoot: filepath.Join("src", "lib.rs"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTestFile(t, filepath.Join(dir, ManifestFile), tt.manifest)

			adapter := NewCargoManifestAdapter(NewLocalSourceFSAdapter())

			crate, err := adapter.ReadCrate(m.Path(dir))
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, crate.Name)
			assert.Equal(t, m.Path(dir), crate.Dir)
			assert.Equal(t, m.Path(filepath.Join(dir, tt.wantRoot)), crate.Root)
		})
	}
}

func TestCargoManifestAdapter_ReadCrate_Errors(t *testing.T) {
	adapter := NewCargoManifestAdapter(NewLocalSourceFSAdapter())

	t.Run("workspace manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, ManifestFile), "[workspace]\nmembers = [\"a\"]\n")

		_, err := adapter.ReadCrate(m.Path(dir))
		assert.ErrorIs(t, err, ErrManifest)
	})

	t.Run("malformed toml", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, ManifestFile), "[package\nname = \n")

		_, err := adapter.ReadCrate(m.Path(dir))
		assert.ErrorIs(t, err, ErrManifest)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := adapter.ReadCrate(m.Path(t.TempDir()))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrManifest)
	})
}
