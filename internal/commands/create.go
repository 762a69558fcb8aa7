package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/tui"
)

var createCmd = &cobra.Command{
	Use:   "create [tags...]",
	Short: "Create a new goal",
	Long: `Create a new goal through the interactive wizard. Tags given as arguments
are pre-assigned to the goal. Value, cost and time estimates are entered as
"reason, low;high" ranges; left empty they default to a unit value and a unit
time estimate.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer app.st.Close()

		if err := tui.RunCreateGoalTUI(app.trk, args, app.now); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
