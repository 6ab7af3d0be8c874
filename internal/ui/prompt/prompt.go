// Package prompt is a one-line text prompt shown as a centered box.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavecast/internal/ui/styles"
)

// Result is what the prompt returns when it closes.
type Result struct {
	Text     string
	Canceled bool
}

// Model wraps a bubbles text input with a title and an open/closed state.
type Model struct {
	input  textinput.Model
	title  string
	active bool
}

func New() Model {
	ti := textinput.New()
	ti.CharLimit = 2048
	ti.Width = 50
	return Model{input: ti}
}

// Open shows the prompt with an empty input.
func (m *Model) Open(title, placeholder string) tea.Cmd {
	m.title = title
	m.active = true
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

func (m Model) Active() bool {
	return m.active
}

// Update feeds msg to the input. When enter or esc closes the prompt, the
// returned result is non-nil.
func (m *Model) Update(msg tea.Msg) (*Result, tea.Cmd) {
	if !m.active {
		return nil, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m.close(strings.TrimSpace(m.input.Value()), false), nil
		case tea.KeyEsc:
			return m.close("", true), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return nil, cmd
}

func (m *Model) close(text string, canceled bool) *Result {
	m.active = false
	m.input.Blur()
	return &Result{Text: text, Canceled: canceled}
}

// View renders the box, at most width cells wide.
func (m Model) View(width int) string {
	if !m.active {
		return ""
	}
	t := styles.T()
	boxWidth := max(min(width-4, 70), 10)
	m.input.Width = boxWidth - 4

	content := t.S().Title.Render(m.title) + "\n\n" +
		m.input.View() + "\n\n" +
		t.S().Subtle.Render("enter confirm · esc cancel")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(boxWidth).
		Render(content)
}
