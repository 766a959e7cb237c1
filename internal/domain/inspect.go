package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// Inspector lists a crate's module tree without asking any questions.
type Inspector struct {
	fs       adapter.SourceFSAdapter
	rust     adapter.RustFileAdapter
	pre      *Preprocessor
	resolver *ModuleResolver
	logger   *log.Logger
}

// NewInspector creates an Inspector.
func NewInspector(fs adapter.SourceFSAdapter, rust adapter.RustFileAdapter, logger *log.Logger) *Inspector {
	return &Inspector{
		fs:       fs,
		rust:     rust,
		pre:      NewPreprocessor(rust),
		resolver: NewModuleResolver(fs),
		logger:   logger,
	}
}

// Inspect returns every module declared in the crate outside test modules,
// depth first. Modules that could not be inlined are reported through their
// status instead of failing the walk.
func (in *Inspector) Inspect(ctx context.Context, crate m.Crate) ([]m.ModuleEntry, error) {
	var entries []m.ModuleEntry

	if err := in.inspectFile(ctx, crate, crate.Root, "crate", 0, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (in *Inspector) inspectFile(ctx context.Context, crate m.Crate, path m.Path, modPath string, depth int, entries *[]m.ModuleEntry) error {
	in.logger.Debug("inspecting file", "path", path, "module", modPath)

	raw, err := in.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content, err := in.pre.StripTestModules(ctx, path, string(raw))
	if err != nil {
		return err
	}

	f, err := parseFile(ctx, in.rust, path, content)
	if err != nil {
		return err
	}
	defer f.close()

	_, mods := f.topLevelItems()

	for _, mod := range mods {
		ident := f.text(mod.ChildByFieldName("name"))
		entry := m.ModuleEntry{
			Path:  modPath + pathSeparator + ident,
			Depth: depth + 1,
		}

		if externalModuleTerminator(mod) == nil {
			entry.Status = m.ModuleInline
			*entries = append(*entries, entry)

			continue
		}

		file, err := in.resolver.Resolve(path, ident, depth == 0)

		switch {
		case errors.Is(err, ErrModuleNotFound):
			entry.Status, entry.Err = m.ModuleMissing, err
		case errors.Is(err, ErrAmbiguousModule):
			entry.Status, entry.Err = m.ModuleAmbiguous, err
		case err != nil:
			return err
		default:
			entry.Status, entry.File = m.ModuleOK, file

			if entry.RelFile, err = in.fs.RelPath(crate.Dir, file); err != nil {
				return fmt.Errorf("failed to locate %s in %s: %w", file, crate.Dir, err)
			}
		}

		*entries = append(*entries, entry)

		if entry.Status != m.ModuleOK {
			continue
		}

		if err := in.inspectFile(ctx, crate, file, entry.Path, depth+1, entries); err != nil {
			return err
		}
	}

	return nil
}
