package domain

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	"github.com/mouse-blink/cherrypick/internal/domain/splice"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// Bundler inlines a crate's module files into a single module block.
type Bundler struct {
	fs       adapter.SourceFSAdapter
	rust     adapter.RustFileAdapter
	pre      *Preprocessor
	resolver *ModuleResolver
	logger   *log.Logger
}

// NewBundler creates a Bundler reading files through fs and parsing them
// through rust.
func NewBundler(fs adapter.SourceFSAdapter, rust adapter.RustFileAdapter, logger *log.Logger) *Bundler {
	return &Bundler{
		fs:       fs,
		rust:     rust,
		pre:      NewPreprocessor(rust),
		resolver: NewModuleResolver(fs),
		logger:   logger,
	}
}

// Bundle inlines the modules and use declarations picked by sel, starting at
// the crate root, and wraps the result in `pub mod <crate name> { ... }`.
// Any failure aborts the whole bundle.
func (b *Bundler) Bundle(ctx context.Context, crate m.Crate, sel Selector) (string, error) {
	body, err := b.bundleFile(ctx, sel, crate.Root, 0, false)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("pub mod %s {\n%s}\n", crate.Name, body), nil
}

// bundleFile returns the spliced text of one file. allSelected is true when
// the file or one of its ancestors was selected with m.SelectAll; sel is not
// consulted below such a module.
func (b *Bundler) bundleFile(ctx context.Context, sel Selector, path m.Path, depth int, allSelected bool) (string, error) {
	b.logger.Debug("bundling file", "path", path, "depth", depth, "all", allSelected)

	raw, err := b.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	content, err := b.pre.Run(ctx, path, depth, string(raw))
	if err != nil {
		return "", err
	}

	f, err := parseFile(ctx, b.rust, path, content)
	if err != nil {
		return "", err
	}
	defer f.close()

	uses, mods := f.topLevelItems()

	edits, err := b.importEdits(f, sel, uses, allSelected)
	if err != nil {
		return "", err
	}

	for _, mod := range mods {
		edit, err := b.moduleEdit(ctx, f, sel, mod, depth, allSelected)
		if err != nil {
			return "", err
		}

		edits = append(edits, edit)
	}

	splice.Sort(edits)

	return splice.Rewrite(content, edits), nil
}

func (b *Bundler) importEdits(f *syntaxFile, sel Selector, uses []*sitter.Node, allSelected bool) ([]m.Edit, error) {
	var edits []m.Edit

	if allSelected {
		return edits, nil
	}

	content := f.content()

	for _, use := range uses {
		region := f.itemRegion(use)

		keep, err := sel.SelectImport(splice.Extract(content, region))
		if err != nil {
			return nil, fmt.Errorf("selecting use declaration at %s:%s: %w", f.path, region.Start, err)
		}

		if !keep {
			b.logger.Debug("dropping use declaration", "path", f.path, "at", region.Start)
			edits = append(edits, m.Edit{Region: region})
		}
	}

	return edits, nil
}

func (b *Bundler) moduleEdit(ctx context.Context, f *syntaxFile, sel Selector, mod *sitter.Node, depth int, allSelected bool) (m.Edit, error) {
	ident := f.text(mod.ChildByFieldName("name"))

	selection := m.SelectAll
	if !allSelected {
		var err error

		selection, err = sel.SelectModule(ident, f.path)
		if err != nil {
			return m.Edit{}, fmt.Errorf("selecting module `%s` in %s: %w", ident, f.path, err)
		}
	}

	b.logger.Debug("module selected", "module", ident, "in", f.path, "selection", selection)

	if selection == m.SelectNone {
		return m.Edit{Region: f.itemRegion(mod)}, nil
	}

	semi := externalModuleTerminator(mod)
	if semi == nil {
		return m.Edit{}, fmt.Errorf("%w: module `%s` in %s", ErrInlineModule, ident, f.path)
	}

	file, err := b.resolver.Resolve(f.path, ident, depth == 0)
	if err != nil {
		return m.Edit{}, fmt.Errorf("in %s: %w", f.path, err)
	}

	body, err := b.bundleFile(ctx, sel, file, depth+1, allSelected || selection == m.SelectAll)
	if err != nil {
		return m.Edit{}, err
	}

	return m.Edit{Region: f.region(semi), Text: " {\n" + body + "}"}, nil
}

// externalModuleTerminator returns the `;` of a `mod name;` declaration, or
// nil when the module has an inline body.
func externalModuleTerminator(mod *sitter.Node) *sitter.Node {
	if mod.ChildByFieldName("body") != nil {
		return nil
	}

	count := mod.ChildCount()
	if count == 0 {
		return nil
	}

	last := mod.Child(count - 1)
	if last == nil || last.Kind() != ";" {
		return nil
	}

	return last
}
