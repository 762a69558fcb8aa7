// Package ledger flattens per-goal progress entries into time-ordered streams
// and merges simultaneous entries into sessions.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/models"
)

// collectEntries flattens the progress of the given goals into entry views,
// sorted ascending by start. Goal order is normalized by id first so equal
// start times fold deterministically.
func collectEntries(goals []*models.Goal) []models.Entry {
	sorted := make([]*models.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var entries []models.Entry
	for _, goal := range sorted {
		for _, p := range goal.Progress {
			entries = append(entries, models.NewEntry(p, goal))
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Cmp(entries[j].Start) < 0
	})
	return entries
}

// MergeSimultaneous collects every progress entry from goals last updated
// after since, drops entries starting at or before since, and folds runs of
// sort-adjacent entries sharing an identical (start, end) into sessions.
// Equal-time entries that are not adjacent after sorting stay separate.
func MergeSimultaneous(goals []*models.Goal, since decimal.Decimal) []*models.Session {
	var active []*models.Goal
	for _, goal := range goals {
		updated, ok := goal.LastUpdatedAt()
		if ok && updated.Cmp(since) > 0 {
			active = append(active, goal)
		}
	}

	var sessions []*models.Session
	for _, entry := range collectEntries(active) {
		if entry.Start.Cmp(since) <= 0 {
			continue
		}
		if n := len(sessions); n > 0 && sessions[n-1].SameTime(entry) {
			sessions[n-1].Add(entry)
			continue
		}
		sessions = append(sessions, models.NewSession(entry))
	}
	return sessions
}

// EntriesInPeriod returns the entries fully contained in [start, end], both
// bounds inclusive, ascending by start time. Simultaneous entries are not
// folded.
func EntriesInPeriod(goals []*models.Goal, start, end decimal.Decimal) []models.Entry {
	var inside []models.Entry
	for _, entry := range collectEntries(goals) {
		if entry.Start.Cmp(start) >= 0 && entry.End.Cmp(end) <= 0 {
			inside = append(inside, entry)
		}
	}
	return inside
}
