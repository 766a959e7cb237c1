package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/cherrypick/internal/domain"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the crate's module tree and which modules can be inlined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newWorkflow(newCommandUI(cmd), newLogger(cmd)).List(cmd.Context(), domain.ListArgs{
				Path: m.Path(pathFlag),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
