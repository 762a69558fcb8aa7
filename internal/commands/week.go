package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/report"
)

var weekCmd = &cobra.Command{
	Use:   "week [days-ago]",
	Short: "Review a week of activity",
	Long: `Merge seven consecutive daily reviews into one report: per-activity totals
summed across the week, with each day's notes. The optional argument shifts
the week back, counting from its most recent day.`,
	Args: cobra.MaximumNArgs(1),
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
		printWeek(app, goalSlice(goals), strings.Join(args, " "))
	},
}

func printWeek(app *app, goals []*models.Goal, arg string) {
	daysAgo := 0
	if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		daysAgo = n
	}
	week := report.WeeklyReview(goals, daysAgo, app.now, app.loc, app.cfg)
	fmt.Printf("Week of %s\n", week.Start.Format("Mon 02 Jan 2006"))
	if len(week.Groups) == 0 {
		fmt.Println("  (no activity)")
		return
	}
	for _, group := range week.Groups {
		fmt.Printf("  %-40s %s\n", truncate(group.Label, 40), formatDuration(group.Total))
		for _, notes := range group.DayNotes {
			fmt.Printf("    - %s\n", notes)
		}
	}
}
