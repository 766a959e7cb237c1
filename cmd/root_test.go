package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/cherrypick/internal/controller"
	"github.com/mouse-blink/cherrypick/internal/domain"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

type mockWorkflow struct {
	mock.Mock
}

func (w *mockWorkflow) Bundle(_ context.Context, args domain.BundleArgs) error {
	return w.Called(args).Error(0)
}

func (w *mockWorkflow) List(_ context.Context, args domain.ListArgs) error {
	return w.Called(args).Error(0)
}

func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	original := newWorkflow
	newWorkflow = func(controller.UI, *log.Logger) domain.Workflow { return wf }

	t.Cleanup(func() { newWorkflow = original })
}

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeCrate(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

var testCrate = map[string]string{
	"Cargo.toml": "[package]\nname = \"my-lib\"\nversion = \"0.1.0\"\n",
	"src/lib.rs": "pub mod a;\nuse std::io;\n",
	"src/a.rs":   "pub fn f() -> u8 {\n    crate::X\n}\n",
}

func TestRootCmd_PassesFlagsToWorkflow(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)

	wf.On("Bundle", mock.MatchedBy(func(args domain.BundleArgs) bool {
		return args.Path == m.Path("crates/x") &&
			args.CrateName == "lib" &&
			args.Output == m.Path("out.rs") &&
			args.Selector == nil
	})).Return(nil)

	_, _, err := runCommand(t, "", "--path", "crates/x", "--crate-name", "lib", "-o", "out.rs", "--no-tui")
	require.NoError(t, err)

	wf.AssertExpectations(t)
}

func TestRootCmd_AllUsesKeepEverythingPolicy(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)

	wf.On("Bundle", mock.MatchedBy(func(args domain.BundleArgs) bool {
		_, ok := args.Selector.(*controller.PolicySelector)
		return ok
	})).Return(nil)

	_, _, err := runCommand(t, "", "--all")
	require.NoError(t, err)

	wf.AssertExpectations(t)
}

func TestRootCmd_PolicyAndAllAreExclusive(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)

	_, _, err := runCommand(t, "", "--all", "--policy", "p.toml")
	require.Error(t, err)

	wf.AssertNotCalled(t, "Bundle", mock.Anything)
}

func TestRootCmd_MissingPolicyFile(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)

	_, _, err := runCommand(t, "", "--policy", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read policy")
}

func TestRootCmd_BundlesWithAll(t *testing.T) {
	dir := writeCrate(t, testCrate)

	stdout, _, err := runCommand(t, "", "--path", dir, "--all")
	require.NoError(t, err)

	assert.Equal(t,
		"pub mod my_lib {\npub mod a {\npub fn f() -> u8 {\n    super::X\n}\n}\nuse std::io;\n}\n",
		stdout)
}

func TestRootCmd_BundlesWithPrompts(t *testing.T) {
	dir := writeCrate(t, testCrate)

	stdout, stderr, err := runCommand(t, "n\nn\n", "--path", dir, "--crate-name", "lib", "--no-tui")
	require.NoError(t, err)

	assert.Equal(t, "pub mod lib {\n\n\n}\n", stdout)
	assert.Contains(t, stderr, "Leave module `a` [a(ll),p(artial),n(one)]? ")
	assert.Contains(t, stderr, "> use std::io;\nLeave this use statement [y,n]? ")
}

func TestRootCmd_BundlesWithPolicyToFile(t *testing.T) {
	dir := writeCrate(t, testCrate)
	policy := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(policy, []byte("[modules]\ndefault = \"all\"\n[imports]\ndrop = [\"std::io\"]\n"), 0o644))

	output := filepath.Join(dir, "out", "bundle.rs")

	stdout, _, err := runCommand(t, "", "--path", filepath.Join(dir, "src"), "--policy", policy, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"pub mod my_lib {\npub mod a {\npub fn f() -> u8 {\n    super::X\n}\n}\n\n}\n",
		string(written))
}

func TestRootCmd_FailureWritesNothing(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml": "[package]\nname = \"broken\"\n",
		"src/lib.rs": "pub mod gone;\n",
	})
	output := filepath.Join(dir, "bundle.rs")

	stdout, _, err := runCommand(t, "", "--path", dir, "--all", "-o", output)
	require.ErrorIs(t, err, domain.ErrModuleNotFound)
	assert.Empty(t, stdout)
	assert.NoFileExists(t, output)
}

func TestStripCargoSubcommand(t *testing.T) {
	assert.Equal(t, []string{"--all"}, stripCargoSubcommand([]string{"cherry-pick-and-bundle", "--all"}))
	assert.Equal(t, []string{"--all"}, stripCargoSubcommand([]string{"--all"}))
	assert.Empty(t, stripCargoSubcommand(nil))
}

func TestRootCmd_HasListSubcommand(t *testing.T) {
	var found *cobra.Command

	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "list" {
			found = sub
		}
	}

	require.NotNil(t, found)
}
