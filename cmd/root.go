// Package cmd provides the root command and CLI setup for cherrypick.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/cherrypick/internal/adapter"
	"github.com/mouse-blink/cherrypick/internal/controller"
	"github.com/mouse-blink/cherrypick/internal/domain"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

// cargoSubcommand is the name cargo passes as the first argument when the
// binary is installed as cargo-cherry-pick-and-bundle.
const cargoSubcommand = "cherry-pick-and-bundle"

var sourceFSAdapter adapter.SourceFSAdapter = adapter.NewLocalSourceFSAdapter()

// newWorkflow builds the workflow for one command invocation.
var newWorkflow = func(ui controller.UI, logger *log.Logger) domain.Workflow {
	return domain.NewWorkflow(
		sourceFSAdapter,
		adapter.NewCargoManifestAdapter(sourceFSAdapter),
		adapter.NewTreeSitterRustAdapter(),
		ui,
		logger,
	)
}

var pathFlag string
var crateNameFlag string
var outputFlag string
var policyFlag string
var allFlag bool
var noTUIFlag bool
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cherrypick",
		Short: "Bundle selected modules of a Rust crate into one file",
		Long: `Cherrypick inlines the file-based module tree of a Rust library crate into a
single pub mod block, asking for every module and use declaration whether it
should be kept.

Answers for modules:
  a, all       keep the module and everything below it
  p, partial   keep the module and keep asking about its children
  n, none      drop the module

Use --policy to answer from a TOML file or --all to keep everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd)
			ui := newCommandUI(cmd)

			selector, err := loadSelector()
			if err != nil {
				return err
			}

			return newWorkflow(ui, logger).Bundle(cmd.Context(), domain.BundleArgs{
				Path:      m.Path(pathFlag),
				CrateName: crateNameFlag,
				Output:    m.Path(outputFlag),
				Selector:  selector,
			})
		},
	}
	cmd.PersistentFlags().StringVar(&pathFlag, "path", ".", "crate directory or any path inside the crate")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&noTUIFlag, "no-tui", false, "use line prompts even on a terminal")
	cmd.Flags().StringVar(&crateNameFlag, "crate-name", "", "name of the generated module (default: crate name from Cargo.toml)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the bundle to this file instead of stdout")
	cmd.Flags().StringVar(&policyFlag, "policy", "", "answer selection questions from a TOML policy file")
	cmd.Flags().BoolVar(&allFlag, "all", false, "keep every module and use declaration without asking")
	cmd.MarkFlagsMutuallyExclusive("policy", "all")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(stripCargoSubcommand(os.Args[1:]))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func stripCargoSubcommand(args []string) []string {
	if len(args) > 0 && args[0] == cargoSubcommand {
		return args[1:]
	}

	return args
}

func newLogger(cmd *cobra.Command) *log.Logger {
	level := log.InfoLevel
	if verboseFlag {
		level = log.DebugLevel
	}

	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "cherrypick",
		Level:  level,
	})
}

// newCommandUI prompts through the TUI only when both the answer stream and
// the prompt stream are terminals.
func newCommandUI(cmd *cobra.Command) controller.UI {
	useTTY := !noTUIFlag && adapter.IsInteractive(cmd.InOrStdin(), cmd.ErrOrStderr())

	return controller.NewUI(cmd, useTTY)
}

// loadSelector returns nil when the user should be asked interactively.
func loadSelector() (domain.Selector, error) {
	if allFlag {
		return controller.NewKeepEverythingPolicy(), nil
	}

	if policyFlag == "" {
		return nil, nil
	}

	data, err := sourceFSAdapter.ReadFile(m.Path(policyFlag))
	if err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}

	policy, err := controller.ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", policyFlag, err)
	}

	return policy, nil
}
