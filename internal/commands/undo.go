package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/tracker"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recently logged session",
	Long: `Remove the most recent progress entry from every goal in the last logged
session. A session logged against several goals at once is undone from all of
them together.`,
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
		if prev == nil {
			fmt.Println("Nothing to undo.")
			return
		}
		if err := app.trk.Undo(tracker.RecordFromSession(prev)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Undone.")
	},
}
