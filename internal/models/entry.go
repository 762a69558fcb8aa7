package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is a read-only projection of one progress entry bound to its owning
// goal. Entries are built per query and never persisted.
type Entry struct {
	Goal  *Goal
	Start decimal.Decimal
	End   decimal.Decimal
	Focus decimal.Decimal
	Notes string
}

// NewEntry wraps a progress entry with its owning goal.
func NewEntry(p ProgressEntry, g *Goal) Entry {
	return Entry{Goal: g, Start: p.Start, End: p.End, Focus: p.Focus, Notes: p.Notes}
}

func (e Entry) Duration() decimal.Decimal { return e.End.Sub(e.Start) }
func (e Entry) Description() string       { return e.Goal.Description }
func (e Entry) Tags() []string            { return e.Goal.Tags }

// GoalFocus is one (goal, focus) pair of a session, kept for undo/replay.
type GoalFocus struct {
	Goal  *Goal
	Focus decimal.Decimal
}

// Session groups entries sharing an identical (start, end) pair: focus split
// across several goals worked simultaneously. Like Entry it is a transient
// view.
type Session struct {
	Entries []Entry
	Start   decimal.Decimal
	End     decimal.Decimal
}

// NewSession starts a session from its first entry.
func NewSession(e Entry) *Session {
	return &Session{Entries: []Entry{e}, Start: e.Start, End: e.End}
}

// SameTime reports whether the entry shares this session's exact span.
func (s *Session) SameTime(e Entry) bool {
	return s.Start.Equal(e.Start) && s.End.Equal(e.End)
}

// Add appends another simultaneous entry.
func (s *Session) Add(e Entry) {
	s.Entries = append(s.Entries, e)
}

func (s *Session) Duration() decimal.Decimal { return s.End.Sub(s.Start) }

// Tags is the union of the member goals' tags, in first-seen order.
func (s *Session) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, e := range s.Entries {
		for _, t := range e.Tags() {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Description joins the member goals' descriptions.
func (s *Session) Description() string {
	parts := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		parts = append(parts, e.Description())
	}
	return strings.Join(parts, " and ")
}

// Notes joins the per-entry notes.
func (s *Session) Notes() string {
	parts := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		parts = append(parts, e.Notes)
	}
	return strings.Join(parts, "|")
}

// GoalFocusPairs lists the member goals with their focus weights.
func (s *Session) GoalFocusPairs() []GoalFocus {
	pairs := make([]GoalFocus, 0, len(s.Entries))
	for _, e := range s.Entries {
		pairs = append(pairs, GoalFocus{Goal: e.Goal, Focus: e.Focus})
	}
	return pairs
}
