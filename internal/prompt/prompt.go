// Package prompt asks for a single line of input with a bubbletea text field.
package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user leaves the prompt with esc or ctrl+c.
var ErrCanceled = errors.New("input canceled")

type model struct {
	input    textinput.Model
	value    string
	done     bool
	canceled bool
}

func newModel(label string) model {
	ti := textinput.New()
	ti.Prompt = label
	ti.Placeholder = "a non-negative integer"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ti.Validate = digitsOnly
	ti.Focus()
	return model{input: ti}
}

// digitsOnly rejects keystrokes that could never form a valid value. Sign and
// whitespace are left for the parser to judge.
func digitsOnly(s string) error {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '+' && r != '-' && r != ' ' {
			return fmt.Errorf("unexpected character %q", r)
		}
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.input.View() + "\n"
}

// Ask shows label and returns the submitted line.
func Ask(in io.Reader, out io.Writer, label string) (string, error) {
	final, err := tea.NewProgram(newModel(label), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}
	m := final.(model)
	if m.canceled {
		return "", ErrCanceled
	}
	return m.value, nil
}
