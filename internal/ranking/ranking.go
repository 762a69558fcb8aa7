// Package ranking computes the three goal-selection projections shown on the
// board: most recently worked, most frequently worked, and highest value per
// estimated time. All sorts are stable so equal keys keep input order.
package ranking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/models"
)

func clamp(goals []*models.Goal, limit int) []*models.Goal {
	if limit < len(goals) {
		return goals[:limit]
	}
	return goals
}

// Recent returns up to limit goals ordered by descending last-update time.
// Goals with no progress sort last.
func Recent(goals []*models.Goal, limit int) []*models.Goal {
	ranked := make([]*models.Goal, len(goals))
	copy(ranked, goals)
	sort.SliceStable(ranked, func(i, j int) bool {
		ui, oki := ranked[i].LastUpdatedAt()
		uj, okj := ranked[j].LastUpdatedAt()
		if !oki || !okj {
			return oki
		}
		return ui.Cmp(uj) > 0
	})
	return clamp(ranked, limit)
}

// Frequent returns up to limit goals worked within window of now, ordered by
// descending cumulative effort over that window.
func Frequent(goals []*models.Goal, limit int, window, now decimal.Decimal) []*models.Goal {
	minTime := now.Sub(window)
	var ranked []*models.Goal
	effort := make(map[int64]decimal.Decimal)
	for _, goal := range goals {
		updated, ok := goal.LastUpdatedAt()
		if ok && updated.Cmp(minTime) > 0 {
			ranked = append(ranked, goal)
			effort[goal.ID] = goal.EffortInInterval(minTime, now)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return effort[ranked[i].ID].Cmp(effort[ranked[j].ID]) > 0
	})
	return clamp(ranked, limit)
}

// Optimal returns up to limit goals ordered by descending value rate. Goals
// whose time estimate is zero have no defined rate and sort last.
func Optimal(goals []*models.Goal, limit int) []*models.Goal {
	ranked := make([]*models.Goal, len(goals))
	copy(ranked, goals)
	rate := func(g *models.Goal) (decimal.Decimal, bool) {
		r, err := g.ValueRate()
		return r, err == nil
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, oki := rate(ranked[i])
		rj, okj := rate(ranked[j])
		if !oki || !okj {
			return oki
		}
		return ri.Cmp(rj) > 0
	})
	return clamp(ranked, limit)
}
