// Package report computes day and week aligned views over the progress
// ledger: the daily review, the tag/description summary, and the weekly
// rollup.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/clock"
	"github.com/mkrylov/goalie/internal/config"
	"github.com/mkrylov/goalie/internal/ledger"
	"github.com/mkrylov/goalie/internal/models"
)

var (
	oneDay     = decimal.NewFromInt(24 * 60 * 60)
	oneHour    = decimal.NewFromInt(60 * 60)
	oneHundred = decimal.NewFromInt(100)
)

// GroupBy selects the summary grouping key.
type GroupBy int

const (
	ByTag GroupBy = iota
	ByDescription
)

// DayStart returns the timestamp of local midnight daysAgo days before now.
func DayStart(now decimal.Decimal, daysAgo int, loc *time.Location) decimal.Decimal {
	local := clock.ToTime(now, loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return clock.FromTime(midnight).Sub(oneDay.Mul(decimal.NewFromInt(int64(daysAgo))))
}

// ActivityGroup is one labeled bucket of a daily review.
type ActivityGroup struct {
	Label    string
	Sessions []*models.Session
	Total    decimal.Decimal
}

// Daily is one reviewed day: its local-midnight date and the session groups
// worked that day, in first-seen order.
type Daily struct {
	Date   time.Time
	Groups []ActivityGroup
}

// DailyActivities reviews the day daysAgo days back. The window is padded on
// both sides so sessions straddling midnight are still seen, and sessions are
// skipped until the first one whose description contains the configured day
// marker: the marker session, not the calendar, starts the day. Sessions
// carrying the upkeep tag or one of the configured upkeep descriptions are
// collapsed into the single upkeep label.
func DailyActivities(goals []*models.Goal, daysAgo int, now decimal.Decimal, loc *time.Location, cfg config.Config) Daily {
	pad := oneHour.Mul(decimal.NewFromInt(int64(cfg.WindowPaddingHours)))
	start := DayStart(now, daysAgo, loc)
	windowEnd := start.Add(oneDay).Add(pad)

	day := Daily{Date: clock.ToTime(start, loc)}
	index := make(map[string]int)
	dayStarted := false
	for _, session := range ledger.MergeSimultaneous(goals, start.Sub(pad)) {
		// Sessions are sorted by start, not end; a long session running past
		// the window must not hide later short ones.
		if session.End.Cmp(windowEnd) >= 0 {
			continue
		}
		if !dayStarted {
			if !containsMarker(session, cfg.DayMarker) {
				continue
			}
			dayStarted = true
		}
		label := activityLabel(session, cfg)
		i, ok := index[label]
		if !ok {
			i = len(day.Groups)
			index[label] = i
			day.Groups = append(day.Groups, ActivityGroup{Label: label})
		}
		day.Groups[i].Sessions = append(day.Groups[i].Sessions, session)
		day.Groups[i].Total = day.Groups[i].Total.Add(session.Duration())
	}
	return day
}

func containsMarker(session *models.Session, marker string) bool {
	if marker == "" {
		return true
	}
	return strings.Contains(strings.ToLower(session.Description()), strings.ToLower(marker))
}

// activityLabel groups a session for the daily review. Upkeep-ish sessions
// share one label; everything else groups by description.
func activityLabel(session *models.Session, cfg config.Config) string {
	for _, tag := range session.Tags() {
		if tag == cfg.UpkeepTag {
			return cfg.UpkeepLabel
		}
	}
	desc := session.Description()
	for _, d := range cfg.UpkeepDescriptions {
		if desc == d {
			return cfg.UpkeepLabel
		}
	}
	return desc
}

// SummaryGroup is one row of a summary report.
type SummaryGroup struct {
	Label   string
	Total   decimal.Decimal
	Percent decimal.Decimal
	Notes   []string
}

// Summary covers a [Start, End) window with duration totals per group.
type Summary struct {
	Start  decimal.Decimal
	End    decimal.Decimal
	Groups []SummaryGroup
}

// Summarize reports the window spanning fromDaysAgo back through toDaysAgo
// (both local-midnight aligned, fromDaysAgo >= toDaysAgo), grouping entries by
// first tag or by description. Each group carries its total duration and its
// share of the whole window span. Groups come back sorted by descending
// total; an empty window yields an empty report.
func Summarize(goals []*models.Goal, fromDaysAgo, toDaysAgo int, by GroupBy, now decimal.Decimal, loc *time.Location) Summary {
	if fromDaysAgo < toDaysAgo {
		fromDaysAgo, toDaysAgo = toDaysAgo, fromDaysAgo
	}
	start := DayStart(now, fromDaysAgo, loc)
	end := DayStart(now, toDaysAgo, loc).Add(oneDay)
	span := end.Sub(start)

	index := make(map[string]int)
	summary := Summary{Start: start, End: end}
	for _, entry := range ledger.EntriesInPeriod(goals, start, end) {
		label := summaryLabel(entry, by)
		i, ok := index[label]
		if !ok {
			i = len(summary.Groups)
			index[label] = i
			summary.Groups = append(summary.Groups, SummaryGroup{Label: label})
		}
		summary.Groups[i].Total = summary.Groups[i].Total.Add(entry.Duration())
		if entry.Notes != "" {
			summary.Groups[i].Notes = append(summary.Groups[i].Notes, entry.Notes)
		}
	}
	for i := range summary.Groups {
		summary.Groups[i].Percent = summary.Groups[i].Total.Div(span).Mul(oneHundred)
	}
	sort.SliceStable(summary.Groups, func(i, j int) bool {
		return summary.Groups[i].Total.Cmp(summary.Groups[j].Total) > 0
	})
	return summary
}

func summaryLabel(entry models.Entry, by GroupBy) string {
	if by == ByTag {
		if tags := entry.Tags(); len(tags) > 0 {
			return tags[0]
		}
		return "untagged"
	}
	return entry.Description()
}

// WeeklyGroup is one label aggregated across a week of daily reviews.
type WeeklyGroup struct {
	Label    string
	Total    decimal.Decimal
	DayNotes []string
}

// Weekly is seven consecutive daily reviews merged by label.
type Weekly struct {
	Start  time.Time
	Days   []Daily
	Groups []WeeklyGroup
}

// WeeklyReview merges the 7 daily reviews ending daysAgo days back, summing
// per-label duration across days and concatenating each day's session notes.
// Groups come back sorted by descending total.
func WeeklyReview(goals []*models.Goal, daysAgo int, now decimal.Decimal, loc *time.Location, cfg config.Config) Weekly {
	week := Weekly{}
	index := make(map[string]int)
	for offset := 6; offset >= 0; offset-- {
		day := DailyActivities(goals, daysAgo+offset, now, loc, cfg)
		week.Days = append(week.Days, day)
		for _, group := range day.Groups {
			i, ok := index[group.Label]
			if !ok {
				i = len(week.Groups)
				index[group.Label] = i
				week.Groups = append(week.Groups, WeeklyGroup{Label: group.Label})
			}
			week.Groups[i].Total = week.Groups[i].Total.Add(group.Total)
			for _, session := range group.Sessions {
				if notes := session.Notes(); strings.Trim(notes, "|") != "" {
					week.Groups[i].DayNotes = append(week.Groups[i].DayNotes, notes)
				}
			}
		}
	}
	if len(week.Days) > 0 {
		week.Start = week.Days[0].Date
	}
	sort.SliceStable(week.Groups, func(i, j int) bool {
		return week.Groups[i].Total.Cmp(week.Groups[j].Total) > 0
	})
	return week
}
