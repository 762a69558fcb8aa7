package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/report"
)

var summaryGroupBy string

var summaryCmd = &cobra.Command{
	Use:   "summary [from-days-ago [to-days-ago]]",
	Short: "Summarize a day range by tag or description",
	Long: `Summarize the time logged over a range of days, grouped by first tag or by
description, with per-group totals and the share of the whole window. Without
arguments the summary covers yesterday.

Examples:
  goalie summary                  # yesterday, by tag
  goalie summary 7 1              # the past week
  goalie summary 1 --by description`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer app.st.Close()

		goals, err := app.st.LoadAll()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printSummary(app, goalSlice(goals), strings.Join(args, " "), summaryGroupBy)
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryGroupBy, "by", "tag", "Group by: tag or description")
}

// printSummary renders a day-range summary. Unparsable arguments default to
// yesterday.
func printSummary(app *app, goals []*models.Goal, arg, by string) {
	from, to := 1, 1
	fields := strings.Fields(arg)
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			from, to = n, n
		}
	}
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			to = n
		}
	}

	groupBy := report.ByTag
	if by == "description" {
		groupBy = report.ByDescription
	}

	summary := report.Summarize(goals, from, to, groupBy, app.now, app.loc)
	if len(summary.Groups) == 0 {
		fmt.Println("(no activity)")
		return
	}
	for _, group := range summary.Groups {
		fmt.Printf("%-30s %10s %6s%%\n", truncate(group.Label, 30),
			formatDuration(group.Total), group.Percent.StringFixed(1))
		for _, note := range group.Notes {
			fmt.Printf("  - %s\n", note)
		}
	}
}

// truncate clips a label for fixed-width report rows.
func truncate(text string, width int) string {
	if len(text) > width {
		return text[:width]
	}
	return text
}

// formatDuration renders decimal seconds as "hh:mm".
func formatDuration(seconds decimal.Decimal) string {
	minutes := seconds.Div(decimal.NewFromInt(60)).IntPart()
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
