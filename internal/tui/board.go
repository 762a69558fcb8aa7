package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/clock"
	"github.com/mkrylov/goalie/internal/models"
)

var sixtyDec = decimal.NewFromInt(60)

const (
	boardColWidth = 60
	boardSpacing  = 4
)

var (
	boardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorAccentBright))
	boardIDStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	recordTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
)

func pad(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

// RenderBoard lays the three ranking projections out side by side, one
// column each for optimal, frequent and recent goals.
func RenderBoard(optimal, frequent, recent []*models.Goal) string {
	var b strings.Builder

	headers := []string{"Optimal", "Frequent", "Recent"}
	for i, title := range headers {
		b.WriteString(boardHeaderStyle.Render(pad(title, boardColWidth)))
		if i < len(headers)-1 {
			b.WriteString(strings.Repeat(" ", boardSpacing))
		}
	}
	b.WriteString("\n")

	columns := [][]*models.Goal{optimal, frequent, recent}
	rows := 0
	for _, col := range columns {
		if len(col) > rows {
			rows = len(col)
		}
	}
	for row := 0; row < rows; row++ {
		for i, col := range columns {
			if row < len(col) {
				goal := col[row]
				header := fmt.Sprintf("%d. ", goal.ID)
				body := pad(goal.Title(), boardColWidth-len(header))
				b.WriteString(boardIDStyle.Render(header))
				b.WriteString(body)
			} else {
				b.WriteString(strings.Repeat(" ", boardColWidth))
			}
			if i < len(columns)-1 {
				b.WriteString(strings.Repeat(" ", boardSpacing))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSessionLine formats one merged session like
// "[tag|tag] 06-21 14:30: (for 01:15) descriptions: notes".
func RenderSessionLine(session *models.Session, loc *time.Location) string {
	started := clock.ToTime(session.Start, loc).Format("01-02 15:04")

	totalMinutes := session.Duration().Div(sixtyDec).IntPart()
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	tags := pad(strings.Join(session.Tags(), "|"), 10)

	descriptions := make([]string, 0, len(session.Entries))
	for _, entry := range session.Entries {
		desc := entry.Description()
		if len(desc) > 40 {
			desc = desc[:40]
		}
		descriptions = append(descriptions, desc)
	}

	return fmt.Sprintf("[%s] %s: (for %02d:%02d) %s: %s",
		recordTagStyle.Render(tags), started, hours, minutes,
		strings.Join(descriptions, " and "), session.Notes())
}

// RenderRecord renders a run of merged sessions, one line per session.
func RenderRecord(sessions []*models.Session, loc *time.Location) string {
	lines := make([]string, 0, len(sessions))
	for _, session := range sessions {
		lines = append(lines, RenderSessionLine(session, loc))
	}
	return strings.Join(lines, "\n")
}
