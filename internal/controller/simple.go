package controller

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/cherrypick/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI with line prompts on the command's error stream and
// answers read word by word from its input stream.
type SimpleUI struct {
	cmd     *cobra.Command
	answers *bufio.Scanner
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// SelectModule repeats the question until it gets a valid answer.
func (s *SimpleUI) SelectModule(ident string, _ m.Path) (m.ModuleSelection, error) {
	for {
		s.prompt(modulePrompt, ident)

		answer, err := s.readAnswer()
		if err != nil {
			return m.SelectNone, err
		}

		if selection, err := m.ParseModuleSelection(answer); err == nil {
			return selection, nil
		}
	}
}

// SelectImport echoes the use declaration and repeats the question until it
// gets a valid answer.
func (s *SimpleUI) SelectImport(text string) (bool, error) {
	for {
		for _, line := range strings.Split(text, "\n") {
			s.prompt("> %s\n", strings.TrimRight(line, "\r"))
		}

		s.prompt(importPrompt)

		answer, err := s.readAnswer()
		if err != nil {
			return false, err
		}

		if keep, ok := parseImportAnswer(answer); ok {
			return keep, nil
		}
	}
}

// DisplayModules prints the module tree as a table.
func (s *SimpleUI) DisplayModules(crate m.Crate, entries []m.ModuleEntry) error {
	if len(entries) == 0 {
		s.printf("Crate %s declares no modules\n", crate.Name)
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "File", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	problems := 0

	for _, entry := range entries {
		if entry.Status != m.ModuleOK {
			problems++
		}

		table.Append([]string{entry.Path, displayFile(entry), string(entry.Status)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Modules %d", len(entries)),
		"",
		fmt.Sprintf("%d not inlinable", problems),
	})

	table.Render()
	s.printf("%s\n%s", crate.Name, tableBuffer.String())

	return nil
}

// DisplayBundle writes the bundle unchanged to standard output.
func (s *SimpleUI) DisplayBundle(bundle string) error {
	_, err := fmt.Fprint(s.cmd.OutOrStdout(), bundle)
	return err
}

func (s *SimpleUI) readAnswer() (string, error) {
	if s.answers == nil {
		s.answers = bufio.NewScanner(s.cmd.InOrStdin())
		s.answers.Split(bufio.ScanWords)
	}

	if !s.answers.Scan() {
		if err := s.answers.Err(); err != nil {
			return "", err
		}

		return "", ErrNoAnswer
	}

	return s.answers.Text(), nil
}

func (s *SimpleUI) prompt(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// displayFile shows module files relative to the crate directory.
func displayFile(entry m.ModuleEntry) string {
	if entry.RelFile == "" {
		return "-"
	}

	return filepath.ToSlash(string(entry.RelFile))
}
