package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/tracker"
)

// RunCreateGoalTUI starts the interactive goal creation wizard.
func RunCreateGoalTUI(trk *tracker.Tracker, contextTags []string, now decimal.Decimal) error {
	model := NewCreateGoalModel(trk, contextTags, now)

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(CreateGoalModel); ok {
		if m.cancelled {
			fmt.Println("Goal creation cancelled.")
		} else if m.completed {
			fmt.Printf("Created goal #%d: %s\n", m.createdGoalID, m.createdGoalTitle)
		} else if m.err != nil {
			fmt.Printf("Error: %v\n", m.err)
		}
	}

	return nil
}
