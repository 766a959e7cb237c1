package domain

import (
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// Selector decides which modules and use declarations survive bundling.
// Implementations may block while waiting for a user.
type Selector interface {
	// SelectModule is asked about every module declaration that is not below
	// a module selected with m.SelectAll. from is the declaring file.
	SelectModule(ident string, from m.Path) (m.ModuleSelection, error)
	// SelectImport receives the exact source text of a use declaration.
	SelectImport(text string) (bool, error)
}

// SelectorFuncs adapts two plain decision functions to Selector.
type SelectorFuncs struct {
	Module func(ident string) m.ModuleSelection
	Import func(text string) bool
}

// SelectModule calls s.Module.
func (s SelectorFuncs) SelectModule(ident string, _ m.Path) (m.ModuleSelection, error) {
	return s.Module(ident), nil
}

// SelectImport calls s.Import.
func (s SelectorFuncs) SelectImport(text string) (bool, error) {
	return s.Import(text), nil
}

// SelectEverything keeps every module and every import.
var SelectEverything Selector = SelectorFuncs{
	Module: func(string) m.ModuleSelection { return m.SelectAll },
	Import: func(string) bool { return true },
}
