package commands

import (
	"fmt"
	"strings"

	"github.com/mkrylov/goalie/internal/ledger"
	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/ranking"
	"github.com/mkrylov/goalie/internal/resolve"
	"github.com/mkrylov/goalie/internal/tracker"
	"github.com/mkrylov/goalie/internal/tui"
)

// runShell is the interactive loop: show the board, read one command,
// dispatch, repeat. Plain input logs time; slash commands do everything else.
func runShell(app *app, tags []string) {
	goals, err := app.st.LoadAll()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(tags) > 0 {
		fmt.Println(strings.Join(tags, " "))
		fmt.Println("=======================================")
	}
	showBoard(app, goals, tags)

	prev := lastSession(goalSlice(goals), app.now)
	var lastRec *tracker.Record

	for {
		input, err := tui.Prompt{}.Ask("Enter command (goal[,time[,notes[,done]]], /create, /edit, /undo, /review, /summary, /week, /quit):")
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)

		if strings.HasPrefix(input, "/") {
			fields := strings.SplitN(input, " ", 2)
			command, rest := fields[0], ""
			if len(fields) > 1 {
				rest = fields[1]
			}
			switch command {
			case "/quit", "/q":
				return
			case "/create":
				if err := tui.RunCreateGoalTUI(app.trk, tags, app.now); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
				if goals, err = app.st.LoadAll(); err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
				// Sessions built before the reload point at goals from the
				// discarded map; re-derive them so a later undo mutates the
				// live objects.
				prev = lastSession(goalSlice(goals), app.now)
				lastRec = nil
			case "/edit":
				goal, err := resolve.Goal(rest, goals, tui.Prompt{})
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					continue
				}
				if err := editGoal(app, goal); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
			case "/undo":
				rec := lastRec
				if rec == nil && prev != nil {
					rec = tracker.RecordFromSession(prev)
				}
				if err := app.trk.Undo(rec); err != nil {
					fmt.Printf("Error: %v\n", err)
				} else {
					fmt.Println("Undone.")
					lastRec = nil
					prev = lastSession(goalSlice(goals), app.now)
				}
			case "/review":
				printReview(app, goalSlice(goals), rest)
			case "/summary":
				printSummary(app, goalSlice(goals), rest, summaryGroupBy)
			case "/week":
				printWeek(app, goalSlice(goals), rest)
			default:
				fmt.Printf("Unknown command %s\n", command)
			}
			continue
		}

		rec, err := app.trk.LogTime(input, goals, prev, app.now)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		lastRec = rec
		prev = lastSession(goalSlice(goals), app.now)
		showTodayRecord(app, goalSlice(goals))
	}
}

// showBoard prints the recent session record and the tri-column ranking
// board. Tags scope which goals rank as recent; frequent and optimal only
// consider incomplete goals.
func showBoard(app *app, goals map[int64]*models.Goal, tags []string) {
	all := goalSlice(goals)
	limit := app.cfg.BoardLimit

	recentGoals := ranking.Recent(all, limit)
	record := ledger.MergeSimultaneous(recentGoals, app.now.Sub(recentWindow))
	if len(record) > limit {
		record = record[len(record)-limit:]
	}
	if len(record) > 0 {
		fmt.Println(tui.RenderRecord(record, app.loc))
		fmt.Println()
	}

	relevant := all
	if len(tags) > 0 {
		relevant = filterByTags(all, tags)
	}
	var incomplete []*models.Goal
	for _, goal := range all {
		if !goal.IsComplete() {
			incomplete = append(incomplete, goal)
		}
	}

	optimal := ranking.Optimal(incomplete, limit)
	frequent := ranking.Frequent(incomplete, limit, recentWindow, app.now)
	recent := ranking.Recent(relevant, limit)
	fmt.Println(tui.RenderBoard(optimal, frequent, recent))
}

// showTodayRecord echoes the last few merged sessions of the past day, so a
// fresh log line is visible immediately.
func showTodayRecord(app *app, goals []*models.Goal) {
	record := ledger.MergeSimultaneous(goals, app.now.Sub(oneDaySeconds))
	if len(record) > 10 {
		record = record[len(record)-10:]
	}
	if len(record) > 0 {
		fmt.Println(tui.RenderRecord(record, app.loc))
	}
}

// filterByTags keeps goals carrying every requested tag.
func filterByTags(goals []*models.Goal, tags []string) []*models.Goal {
	var filtered []*models.Goal
	for _, goal := range goals {
		tagSet := make(map[string]bool, len(goal.Tags))
		for _, t := range goal.Tags {
			tagSet[t] = true
		}
		all := true
		for _, t := range tags {
			if !tagSet[t] {
				all = false
				break
			}
		}
		if all {
			filtered = append(filtered, goal)
		}
	}
	return filtered
}
