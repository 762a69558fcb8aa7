package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Range is a [low, high] estimate for one component reason. Equal bounds are a
// point estimate. low <= high is expected but not enforced.
type Range struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// Mean returns (low+high)/2.
func (r Range) Mean() decimal.Decimal {
	return r.Low.Add(r.High).Div(decimal.NewFromInt(2))
}

// PointRange builds a Range with both bounds set to v.
func PointRange(v decimal.Decimal) Range {
	return Range{Low: v, High: v}
}

// ProgressEntry is one logged span of work against a goal. Timestamps are
// decimal seconds since the epoch. Focus weights the span when effort is
// split across goals worked simultaneously.
type ProgressEntry struct {
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Focus decimal.Decimal `json:"focus"`
	Notes string          `json:"notes"`
}

// Goal is one long-lived unit of work or interest, with estimates and an
// append-only progress ledger.
type Goal struct {
	ID          int64
	Description string
	Thoughts    string
	Tags        []string

	ValueComponents map[string]Range
	CostComponents  map[string]Range
	TimeComponents  map[string]Range

	Progress []ProgressEntry

	CreatedAt   decimal.Decimal
	LastSavedAt decimal.Decimal
	CompletedAt *decimal.Decimal

	Requires []int64
}

// Title is the description up to the first period.
func (g *Goal) Title() string {
	if i := strings.Index(g.Description, "."); i >= 0 {
		return g.Description[:i]
	}
	return g.Description
}

// IsComplete reports whether the goal has been marked completed.
func (g *Goal) IsComplete() bool {
	return g.CompletedAt != nil
}

// LastUpdatedAt is the end of the most recent progress entry. ok is false
// when the goal has no progress at all.
func (g *Goal) LastUpdatedAt() (decimal.Decimal, bool) {
	if len(g.Progress) == 0 {
		return decimal.Decimal{}, false
	}
	return g.Progress[len(g.Progress)-1].End, true
}

func sumOfMeans(components map[string]Range) decimal.Decimal {
	total := decimal.Zero
	for _, r := range components {
		total = total.Add(r.Mean())
	}
	return total
}

// TotalEstimatedCost sums the mean of every cost component.
func (g *Goal) TotalEstimatedCost() decimal.Decimal {
	return sumOfMeans(g.CostComponents)
}

// TotalEstimatedValue sums the mean of every value component.
func (g *Goal) TotalEstimatedValue() decimal.Decimal {
	return sumOfMeans(g.ValueComponents)
}

// TotalEstimatedTime sums the mean of every time component, in minutes.
func (g *Goal) TotalEstimatedTime() decimal.Decimal {
	return sumOfMeans(g.TimeComponents)
}

// NetEstimatedValue is estimated value minus estimated cost.
func (g *Goal) NetEstimatedValue() decimal.Decimal {
	return g.TotalEstimatedValue().Sub(g.TotalEstimatedCost())
}

// ValueRate is net estimated value per estimated time unit. A zero time
// estimate is an error condition, not a silent zero.
func (g *Goal) ValueRate() (decimal.Decimal, error) {
	t := g.TotalEstimatedTime()
	if t.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("goal #%d has no time estimate", g.ID)
	}
	return g.NetEstimatedValue().Div(t), nil
}

// EffortInInterval sums focus-weighted effort from the progress ledger.
// Only an entry's end is clamped to the window start; its start and the end
// boundary are taken as-is.
func (g *Goal) EffortInInterval(start, end decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range g.Progress {
		effectiveEnd := p.End
		if effectiveEnd.Cmp(start) < 0 {
			effectiveEnd = start
		}
		effort := effectiveEnd.Sub(p.Start)
		if effort.IsNegative() {
			continue
		}
		total = total.Add(effort.Mul(p.Focus))
	}
	return total
}

// AddTime appends one progress entry. When complete is true the goal is also
// marked completed at now.
func (g *Goal) AddTime(start, end, focus decimal.Decimal, notes string, complete bool, now decimal.Decimal) {
	g.Progress = append(g.Progress, ProgressEntry{Start: start, End: end, Focus: focus, Notes: notes})
	if complete {
		g.CompletedAt = &now
	}
}

// UndoAddTime removes exactly the most recent progress entry.
func (g *Goal) UndoAddTime() error {
	if len(g.Progress) == 0 {
		return fmt.Errorf("goal #%d has no progress to undo", g.ID)
	}
	g.Progress = g.Progress[:len(g.Progress)-1]
	return nil
}
