package domain

import "errors"

var (
	// ErrModuleNotFound is returned when neither <name>.rs nor <name>/mod.rs exists.
	ErrModuleNotFound = errors.New("module file not found")
	// ErrAmbiguousModule is returned when both <name>.rs and <name>/mod.rs exist.
	ErrAmbiguousModule = errors.New("ambiguous module file")
	// ErrInlineModule is returned when a module picked for inlining has its body
	// written in the parent file.
	ErrInlineModule = errors.New("inline module bodies are not supported")
)
