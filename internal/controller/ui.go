// Package controller implements the user-facing side of cherrypick: the
// selection prompts, the non-interactive policy and result rendering.
package controller

import (
	"errors"

	m "github.com/mouse-blink/cherrypick/internal/model"
)

// ErrNoAnswer is returned when the input closes before a question is answered.
var ErrNoAnswer = errors.New("no answer: input closed")

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// UI answers the bundler's questions and shows its results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// SelectModule asks whether module ident declared in from should be kept.
	SelectModule(ident string, from m.Path) (m.ModuleSelection, error)
	// SelectImport asks whether the use declaration text should be kept.
	SelectImport(text string) (bool, error)
	// DisplayModules shows a crate's module tree.
	DisplayModules(crate m.Crate, entries []m.ModuleEntry) error
	// DisplayBundle writes the finished bundle to standard output.
	DisplayBundle(bundle string) error
}

const (
	modulePrompt = "Leave module `%s` [a(ll),p(artial),n(one)]? "
	importPrompt = "Leave this use statement [y,n]? "
)

func parseImportAnswer(answer string) (bool, bool) {
	switch answer {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
