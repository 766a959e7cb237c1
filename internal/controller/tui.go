package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/cherrypick/internal/model"
)

var (
	treeNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	treeFileStyle   = lipgloss.NewStyle().Faint(true)
	treeStatusStyle = map[m.ModuleStatus]lipgloss.Style{
		m.ModuleOK:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		m.ModuleMissing:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		m.ModuleAmbiguous: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		m.ModuleInline:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
)

// TUI implements UI using Bubble Tea prompts on a terminal.
type TUI struct {
	input  io.Reader
	prompt io.Writer
	output io.Writer
	run    func(tea.Model) (tea.Model, error)
}

// NewTUI creates a new TUI reading keys from input, drawing prompts on
// prompt and writing results to output.
func NewTUI(input io.Reader, prompt, output io.Writer) *TUI {
	t := &TUI{input: input, prompt: prompt, output: output}
	t.run = t.runProgram

	return t
}

// SelectModule shows the module question and waits for an answer.
func (t *TUI) SelectModule(ident string, _ m.Path) (m.ModuleSelection, error) {
	answer, err := t.ask(modulePromptModel(ident))
	if err != nil {
		return m.SelectNone, err
	}

	return m.ParseModuleSelection(answer)
}

// SelectImport shows the use declaration and waits for an answer.
func (t *TUI) SelectImport(text string) (bool, error) {
	answer, err := t.ask(importPromptModel(text))
	if err != nil {
		return false, err
	}

	keep, _ := parseImportAnswer(answer)

	return keep, nil
}

// DisplayModules prints the module tree indented by depth.
func (t *TUI) DisplayModules(crate m.Crate, entries []m.ModuleEntry) error {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render(crate.Name))
	b.WriteString("\n")

	for _, entry := range entries {
		name := entry.Path[strings.LastIndex(entry.Path, "::")+2:]
		status, ok := treeStatusStyle[entry.Status]

		if !ok {
			status = lipgloss.NewStyle()
		}

		fmt.Fprintf(&b, "%s%s %s %s\n",
			strings.Repeat("  ", entry.Depth),
			treeNameStyle.Render(name),
			treeFileStyle.Render(displayFile(entry)),
			status.Render(string(entry.Status)),
		)
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayBundle writes the bundle unchanged to the output stream.
func (t *TUI) DisplayBundle(bundle string) error {
	_, err := fmt.Fprint(t.output, bundle)
	return err
}

func (t *TUI) ask(model promptModel) (string, error) {
	final, err := t.run(model)
	if err != nil {
		return "", err
	}

	answered, ok := final.(promptModel)
	if !ok || answered.aborted {
		return "", ErrAborted
	}

	if answered.chosen < 0 {
		return "", ErrNoAnswer
	}

	return answered.choices[answered.chosen].label, nil
}

func (t *TUI) runProgram(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(t.input), tea.WithOutput(t.prompt))

	return program.Run()
}
