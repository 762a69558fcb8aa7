package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PromptModel reads one line of user text below a message. It backs the
// Prompter interface the resolver and the interactive loop consume.
type PromptModel struct {
	message   string
	input     textinput.Model
	answer    string
	cancelled bool
}

// NewPromptModel builds a prompt showing message above a single text input.
func NewPromptModel(message string) PromptModel {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 200
	input.Width = 60
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return PromptModel{message: message, input: input}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.answer = m.input.Value()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	if m.cancelled || m.answer != "" {
		return ""
	}
	var b strings.Builder
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(messageStyle.Render(m.message))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

// Prompt is the interactive prompt collaborator.
type Prompt struct{}

// Ask blocks for one line of user text.
func (Prompt) Ask(message string) (string, error) {
	p := tea.NewProgram(NewPromptModel(message))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(PromptModel)
	if !ok || m.cancelled {
		return "", fmt.Errorf("prompt cancelled")
	}
	return m.answer, nil
}
