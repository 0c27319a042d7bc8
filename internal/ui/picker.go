// Package ui provides optional terminal interfaces.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user backs out of a picker.
var ErrCancelled = errors.New("selection cancelled")

// Option is one entry of a picker.
type Option struct {
	Key    string // shortcut key, also accepted by the line prompt
	Label  string
	Detail string
}

// Choose asks the user to pick one of options and returns its index.
// It runs an interactive picker when in and out are both terminals and falls
// back to a line prompt otherwise.
func Choose(ctx context.Context, in io.Reader, out io.Writer, title string, options []Option, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}
	if IsTTY(in) && IsTTY(out) {
		return Pick(ctx, in, out, title, options, defaultIndex)
	}
	return Prompt(in, out, title, options, defaultIndex)
}

// Pick runs the interactive picker.
func Pick(ctx context.Context, in io.Reader, out io.Writer, title string, options []Option, defaultIndex int) (int, error) {
	model := newPickerModel(title, options, defaultIndex)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	m, ok := final.(*pickerModel)
	if !ok || m.cancelled || !m.chosen {
		return 0, ErrCancelled
	}
	return m.cursor, nil
}

// Prompt prints the options and reads one line from in. An empty answer or
// end of input selects the default.
func Prompt(in io.Reader, out io.Writer, title string, options []Option, defaultIndex int) (int, error) {
	fmt.Fprintf(out, "  %s\n\n", title)
	keys := make([]string, 0, len(options))
	for _, o := range options {
		fmt.Fprintf(out, "    %s) %s\n", o.Key, o.Label)
		if o.Detail != "" {
			fmt.Fprintf(out, "       -> %s\n", o.Detail)
		}
		keys = append(keys, o.Key)
	}
	fmt.Fprintf(out, "\n  Choice [%s] (default: %s): ", strings.Join(keys, "/"), options[defaultIndex].Key)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read choice: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultIndex, nil
	}
	for i, o := range options {
		if o.Key == answer {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid choice %q", answer)
}

type pickerModel struct {
	title     string
	options   []Option
	cursor    int
	chosen    bool
	cancelled bool
}

func newPickerModel(title string, options []Option, cursor int) *pickerModel {
	return &pickerModel{title: title, options: options, cursor: cursor}
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	default:
		for i, o := range m.options {
			if o.Key != "" && o.Key == s {
				m.cursor = i
				m.chosen = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString("  " + m.title + "\n\n")
	for i, o := range m.options {
		pointer := " "
		if i == m.cursor {
			pointer = ">"
		}
		fmt.Fprintf(&b, "  %s %s) %s\n", pointer, o.Key, o.Label)
		if o.Detail != "" {
			fmt.Fprintf(&b, "       -> %s\n", o.Detail)
		}
	}
	b.WriteString("\n  up/down to move, enter to select, q to cancel\n")
	return b.String()
}

// IsTTY reports whether v is a terminal.
func IsTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
