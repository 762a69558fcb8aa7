package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/tracker"
)

// Step represents the current step in the goal creation wizard
type Step int

const (
	StepDescription Step = iota
	StepTags
	StepValues
	StepCosts
	StepTimes
	StepSave
)

var stepLabels = []string{"Description", "Tags", "Value estimates", "Cost estimates", "Time estimates", "Save"}

// CreateGoalModel is the TUI model for creating a goal
type CreateGoalModel struct {
	currentStep Step
	inputs      []textinput.Model

	tracker *tracker.Tracker
	now     decimal.Decimal

	description string
	tags        []string
	values      map[string]models.Range
	costs       map[string]models.Range
	times       map[string]models.Range

	err           error
	completed     bool
	cancelled     bool
	validationErr string

	createdGoalID    int64
	createdGoalTitle string
}

// NewCreateGoalModel builds the wizard. Tags given on the command line are
// pre-assigned, matching how the interface tags new goals by context.
func NewCreateGoalModel(trk *tracker.Tracker, contextTags []string, now decimal.Decimal) CreateGoalModel {
	inputs := make([]textinput.Model, 5)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepDescription].Placeholder = "Enter a description... (required; text before the first '.' is the title)"
	inputs[StepDescription].Focus()
	inputs[StepDescription].CharLimit = 500

	inputs[StepTags].Placeholder = "Add tag (Enter to finish)"
	inputs[StepTags].CharLimit = 50

	inputs[StepValues].Placeholder = "reason, low;high (or just a number; Enter to finish)"
	inputs[StepCosts].Placeholder = "reason, low;high (or just a number; Enter to skip)"
	inputs[StepTimes].Placeholder = "reason, minutes-low;minutes-high (Enter to finish)"

	return CreateGoalModel{
		inputs:  inputs,
		tracker: trk,
		now:     now,
		tags:    append([]string(nil), contextTags...),
		values:  map[string]models.Range{},
		costs:   map[string]models.Range{},
		times:   map[string]models.Range{},
	}
}

func (m CreateGoalModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m CreateGoalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		case "tab", "down":
			if m.currentStep == StepDescription && strings.TrimSpace(m.description) == "" {
				m.validationErr = "Description is required"
				return m, nil
			}
			return m.nextStep()
		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
		if m.currentStep == StepDescription {
			m.description = m.inputs[StepDescription].Value()
		}
	}
	return m, cmd
}

func (m CreateGoalModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("New Goal"))
	b.WriteString("\n\n")

	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	futureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for i, label := range stepLabels {
		switch {
		case Step(i) == m.currentStep:
			b.WriteString(currentStyle.Render("> " + label))
		case Step(i) < m.currentStep:
			b.WriteString(doneStyle.Render("* " + label))
		default:
			b.WriteString(futureStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepDescription:
		b.WriteString("Description\n")
		b.WriteString(m.inputs[StepDescription].View())
	case StepTags:
		b.WriteString("Tags\n")
		if len(m.tags) > 0 {
			b.WriteString(fmt.Sprintf("Added: %s\n", strings.Join(m.tags, ", ")))
		}
		b.WriteString(m.inputs[StepTags].View())
	case StepValues:
		b.WriteString(fmt.Sprintf("Value estimates (%d added)\n", len(m.values)))
		b.WriteString(m.inputs[StepValues].View())
	case StepCosts:
		b.WriteString(fmt.Sprintf("Cost estimates (%d added)\n", len(m.costs)))
		b.WriteString(m.inputs[StepCosts].View())
	case StepTimes:
		b.WriteString(fmt.Sprintf("Time estimates (%d added)\n", len(m.times)))
		b.WriteString(m.inputs[StepTimes].View())
	case StepSave:
		b.WriteString("Press Enter to save the goal")
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.validationErr))
	}

	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("Enter: Next | Shift+Tab: Back | Esc: Cancel"))

	return b.String()
}

func (m CreateGoalModel) handleEnter() (CreateGoalModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepDescription:
		if strings.TrimSpace(m.description) == "" {
			m.validationErr = "Description is required"
			return m, nil
		}
		return m.nextStep()

	case StepTags:
		tag := strings.TrimSpace(m.inputs[StepTags].Value())
		if tag == "" {
			return m.nextStep()
		}
		m.tags = append(m.tags, tag)
		m.inputs[StepTags].SetValue("")
		return m, nil

	case StepValues:
		return m.handleComponentEnter(m.values)
	case StepCosts:
		return m.handleComponentEnter(m.costs)
	case StepTimes:
		return m.handleComponentEnter(m.times)

	case StepSave:
		return m.createGoal()
	}
	return m, nil
}

// handleComponentEnter reads one "reason, low;high" line into the current
// component map. A bare number is a point estimate under the default reason.
func (m CreateGoalModel) handleComponentEnter(components map[string]models.Range) (CreateGoalModel, tea.Cmd) {
	line := strings.TrimSpace(m.inputs[m.currentStep].Value())
	if line == "" {
		return m.nextStep()
	}
	reason, r, err := parseComponent(line)
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	components[reason] = r
	m.inputs[m.currentStep].SetValue("")
	return m, nil
}

// parseComponent parses "reason, low;high", "reason, n" or "n".
func parseComponent(line string) (string, models.Range, error) {
	reason := "default"
	bounds := line
	if i := strings.Index(line, ","); i >= 0 {
		reason = strings.TrimSpace(line[:i])
		bounds = strings.TrimSpace(line[i+1:])
	}
	low, high := bounds, bounds
	if i := strings.Index(bounds, ";"); i >= 0 {
		low = strings.TrimSpace(bounds[:i])
		high = strings.TrimSpace(bounds[i+1:])
	}
	lowDec, err := decimal.NewFromString(low)
	if err != nil {
		return "", models.Range{}, fmt.Errorf("bad lower bound %q", low)
	}
	highDec, err := decimal.NewFromString(high)
	if err != nil {
		return "", models.Range{}, fmt.Errorf("bad upper bound %q", high)
	}
	return reason, models.Range{Low: lowDec, High: highDec}, nil
}

func (m CreateGoalModel) nextStep() (CreateGoalModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

func (m CreateGoalModel) prevStep() (CreateGoalModel, tea.Cmd) {
	if m.currentStep > StepDescription {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

func (m CreateGoalModel) createGoal() (CreateGoalModel, tea.Cmd) {
	goal, err := m.tracker.CreateGoal(m.description, m.tags, m.values, m.costs, m.times, m.now)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.completed = true
	m.createdGoalID = goal.ID
	m.createdGoalTitle = goal.Title()
	return m, tea.Quit
}
