package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/resolve"
	"github.com/mkrylov/goalie/internal/tui"
)

var thoughtsCmd = &cobra.Command{
	Use:   "thoughts <goal> [text...]",
	Short: "Show or update a goal's free-text thoughts",
	Long: `Show the scratch notes stored with a goal, or replace them when text is
given. The goal is matched by id or title substring like everywhere else.`,
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
		goal, err := resolve.Goal(args[0], goals, tui.Prompt{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(args) == 1 {
			if goal.Thoughts == "" {
				fmt.Printf("Goal #%d has no thoughts recorded.\n", goal.ID)
			} else {
				fmt.Println(goal.Thoughts)
			}
			return
		}

		goal.Thoughts = strings.Join(args[1:], " ")
		if err := app.st.Save(goal); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Updated thoughts for goal #%d.\n", goal.ID)
	},
}
