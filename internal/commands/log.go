package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [shorthand]",
	Short: "Log time against one or more goals",
	Long: `Log time using the compact shorthand: goal[,time[,notes[,done]]].

The goal field takes several simultaneous goals separated by "/" with an
optional focus weight after ":". The time field is minutes elapsed ("30"),
the clock time the activity ended ("14:30", "1:14:30" for yesterday), or
empty to close out at the current instant. A trailing "1" marks every
referenced goal complete.

Examples:
  goalie log write,30                # 30 minutes on "write"
  goalie log "write:2/review,14:30"  # split focus, ended at 14:30
  goalie log write,25,draft done,1   # with notes, marked complete`,
	Args: cobra.MinimumNArgs(1),
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
		prev := lastSession(goalSlice(goals), app.now)

		if _, err := app.trk.LogTime(strings.Join(args, " "), goals, prev, app.now); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		showTodayRecord(app, goalSlice(goals))
	},
}
