package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/report"
	"github.com/mkrylov/goalie/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [days-ago]",
	Short: "Review one day's activities",
	Long: `Review everything logged on one day, grouped by activity. The day starts at
the first session matching the configured day marker, not at midnight, so a
night that straddles midnight counts toward the day it ended.`,
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
		printReview(app, goalSlice(goals), strings.Join(args, " "))
	},
}

// printReview renders the daily activity groups. Unparsable day counts fall
// back to today.
func printReview(app *app, goals []*models.Goal, arg string) {
	daysAgo := 0
	if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		daysAgo = n
	}
	day := report.DailyActivities(goals, daysAgo, app.now, app.loc, app.cfg)
	fmt.Printf("%s\n", day.Date.Format("Mon 02 Jan 2006"))
	if len(day.Groups) == 0 {
		fmt.Println("  (no activity)")
		return
	}
	for _, group := range day.Groups {
		fmt.Printf("  %-40s %s\n", truncate(group.Label, 40), formatDuration(group.Total))
		for _, session := range group.Sessions {
			fmt.Printf("    %s\n", tui.RenderSessionLine(session, app.loc))
		}
	}
}
