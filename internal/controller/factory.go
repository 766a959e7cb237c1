package controller

import (
	"github.com/spf13/cobra"
)

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea) prompting on the
// command's error stream. When useTTY is false, it returns a SimpleUI.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.InOrStdin(), cmd.ErrOrStderr(), cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
