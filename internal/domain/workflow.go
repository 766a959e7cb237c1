// Package domain contains the crate bundling workflow and logic.
package domain

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	"github.com/mouse-blink/cherrypick/internal/controller"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

const outputPerm = 0o644

// BundleArgs configures one bundling run.
type BundleArgs struct {
	// Path is the crate directory or any path inside it.
	Path m.Path
	// CrateName overrides the name read from Cargo.toml.
	CrateName string
	// Output is the file to write; the UI receives the bundle when empty.
	Output m.Path
	// Selector answers the selection questions; the UI is asked when nil.
	Selector Selector
}

// ListArgs configures a module tree listing.
type ListArgs struct {
	Path m.Path
}

// Workflow defines the operations exposed to the command line.
type Workflow interface {
	Bundle(ctx context.Context, args BundleArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	fs        adapter.SourceFSAdapter
	manifest  adapter.ManifestAdapter
	bundler   *Bundler
	inspector *Inspector
	ui        controller.UI
	logger    *log.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	manifest adapter.ManifestAdapter,
	rust adapter.RustFileAdapter,
	ui controller.UI,
	logger *log.Logger,
) Workflow {
	return &workflow{
		fs:        fs,
		manifest:  manifest,
		bundler:   NewBundler(fs, rust, logger),
		inspector: NewInspector(fs, rust, logger),
		ui:        ui,
		logger:    logger,
	}
}

// Bundle locates the crate, bundles it and writes the result. Nothing is
// written when bundling fails.
func (w *workflow) Bundle(ctx context.Context, args BundleArgs) error {
	crate, err := w.locateCrate(args.Path)
	if err != nil {
		return err
	}

	if args.CrateName != "" {
		crate.Name = m.CrateIdent(args.CrateName)
	}

	sel := args.Selector
	if sel == nil {
		sel = w.ui
	}

	w.logger.Info("bundling crate", "name", crate.Name, "root", crate.Root)

	bundle, err := w.bundler.Bundle(ctx, crate, sel)
	if err != nil {
		return err
	}

	if args.Output == "" {
		return w.ui.DisplayBundle(bundle)
	}

	if err := w.fs.WriteFile(args.Output, []byte(bundle), outputPerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", args.Output, err)
	}

	w.logger.Info("bundle written", "path", args.Output, "bytes", len(bundle))

	return nil
}

// List prints the crate's module tree.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	crate, err := w.locateCrate(args.Path)
	if err != nil {
		return err
	}

	entries, err := w.inspector.Inspect(ctx, crate)
	if err != nil {
		return err
	}

	return w.ui.DisplayModules(crate, entries)
}

func (w *workflow) locateCrate(start m.Path) (m.Crate, error) {
	if start == "" {
		start = "."
	}

	dir, err := w.fs.FindCrateRoot(start)
	if err != nil {
		return m.Crate{}, err
	}

	crate, err := w.manifest.ReadCrate(dir)
	if err != nil {
		return m.Crate{}, err
	}

	w.logger.Debug("crate located", "dir", crate.Dir, "name", crate.Name)

	return crate, nil
}
