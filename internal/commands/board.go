package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board [tags...]",
	Short: "Show the Optimal/Frequent/Recent board",
	Long: `Print recent activity and the three ranking columns without entering the
interactive shell. Tags given as arguments scope the recent column to goals
carrying all of them.`,
	Args: cobra.ArbitraryArgs,
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
		showBoard(app, goals, args)
	},
}
