package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mkrylov/goalie/internal/clock"
	"github.com/mkrylov/goalie/internal/config"
	"github.com/mkrylov/goalie/internal/ledger"
	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/store"
	"github.com/mkrylov/goalie/internal/tracker"
	"github.com/mkrylov/goalie/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// recentWindow bounds the "recent activity" record and the frequent ranking.
var recentWindow = decimal.NewFromInt(14 * 24 * 60 * 60)

var oneDaySeconds = decimal.NewFromInt(24 * 60 * 60)

var rootCmd = &cobra.Command{
	Use:   "goalie [tags...]",
	Short: "A goal and time tracking shell",
	Long: `goalie logs time spent on personal goals via a compact shorthand and derives
prioritization and reporting views from the accumulated log.

Run without a subcommand for the interactive shell: it shows recent activity,
the Optimal/Frequent/Recent board, and reads commands. Tags given as arguments
scope the board and are assigned to goals created in that session.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer app.st.Close()
		runShell(app, args)
	},
}

// app bundles the wired collaborators every command needs.
type app struct {
	cfg config.Config
	st  *store.SQLite
	trk *tracker.Tracker
	now decimal.Decimal
	loc *time.Location
}

// initApp loads config, opens the store and captures the current instant.
// The instant is captured once so every computation in one invocation sees
// the same "now".
func initApp() (*app, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	clk := clock.System{}
	st, err := store.Open(cfg.DBPath(), clk)
	if err != nil {
		return nil, err
	}
	loc := time.Local
	trk := &tracker.Tracker{Store: st, Prompter: tui.Prompt{}, Config: cfg, Loc: loc}
	return &app{cfg: cfg, st: st, trk: trk, now: clk.Now(), loc: loc}, nil
}

// goalSlice flattens the goal map in id order.
func goalSlice(goals map[int64]*models.Goal) []*models.Goal {
	ids := make([]int64, 0, len(goals))
	for id := range goals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.Goal, 0, len(ids))
	for _, id := range ids {
		out = append(out, goals[id])
	}
	return out
}

// lastSession returns the most recent merged session, or nil when the log is
// empty over the recent window.
func lastSession(goals []*models.Goal, now decimal.Decimal) *models.Session {
	sessions := ledger.MergeSimultaneous(goals, now.Sub(recentWindow))
	if len(sessions) == 0 {
		return nil
	}
	return sessions[len(sessions)-1]
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goalie %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(thoughtsCmd)
	rootCmd.AddCommand(versionCmd)
}
