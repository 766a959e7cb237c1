package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptContextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).PaddingLeft(2)
	promptCursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	promptChosenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	promptFaintStyle   = lipgloss.NewStyle().Faint(true)
)

// choice is one answer offered by a prompt.
type choice struct {
	label   string
	binding key.Binding
}

type promptKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Choose  key.Binding
	Quit    key.Binding
	choices []key.Binding
}

func (k promptKeyMap) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, k.choices...), k.Choose, k.Quit)
}

func (k promptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.choices, {k.Up, k.Down, k.Choose, k.Quit}}
}

// promptModel is a single question answered by picking one choice, either
// with its shortcut key or with the arrow keys and enter.
type promptModel struct {
	title   string
	context []string
	choices []choice
	keys    promptKeyMap
	help    help.Model
	cursor  int
	chosen  int
	aborted bool
}

func newPromptModel(title string, context string, choices []choice) promptModel {
	keys := promptKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "abort")),
	}
	for _, c := range choices {
		keys.choices = append(keys.choices, c.binding)
	}

	var lines []string
	if context != "" {
		lines = strings.Split(context, "\n")
	}

	return promptModel{
		title:   title,
		context: lines,
		choices: choices,
		keys:    keys,
		help:    help.New(),
		chosen:  -1,
	}
}

func modulePromptModel(ident string) promptModel {
	return newPromptModel(fmt.Sprintf("Leave module `%s`?", ident), "", []choice{
		{label: "all", binding: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all"))},
		{label: "partial", binding: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "partial"))},
		{label: "none", binding: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none"))},
	})
}

func importPromptModel(text string) promptModel {
	return newPromptModel("Leave this use statement?", text, []choice{
		{label: "yes", binding: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes"))},
		{label: "no", binding: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no"))},
	})
}

func (p promptModel) Init() tea.Cmd {
	return nil
}

func (p promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.aborted = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.choices)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Choose):
			p.chosen = p.cursor
			return p, tea.Quit
		default:
			for i, c := range p.choices {
				if key.Matches(msg, c.binding) {
					p.cursor, p.chosen = i, i
					return p, tea.Quit
				}
			}
		}
	}

	return p, nil
}

func (p promptModel) View() string {
	var b strings.Builder

	for _, line := range p.context {
		b.WriteString(promptContextStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(promptTitleStyle.Render(p.title))

	if p.done() {
		if p.aborted {
			b.WriteString(" " + promptFaintStyle.Render("aborted") + "\n")
		} else {
			b.WriteString(" " + promptChosenStyle.Render(p.choices[p.chosen].label) + "\n")
		}

		return b.String()
	}

	b.WriteString("\n")

	for i, c := range p.choices {
		if i == p.cursor {
			b.WriteString(promptCursorStyle.Render("› " + c.label))
		} else {
			b.WriteString("  " + c.label)
		}

		b.WriteString("\n")
	}

	b.WriteString(p.help.View(p.keys))
	b.WriteString("\n")

	return b.String()
}

func (p promptModel) done() bool {
	return p.aborted || p.chosen >= 0
}
