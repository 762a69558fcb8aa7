package models

import (
	"strings"
	"testing"
)

func sessionOfTwo() *Session {
	write := &Goal{ID: 1, Description: "write docs", Tags: []string{"work", "deep"}}
	review := &Goal{ID: 2, Description: "review code", Tags: []string{"work"}}
	s := NewSession(Entry{Goal: write, Start: dec("100"), End: dec("700"), Focus: dec("2"), Notes: "intro"})
	s.Add(Entry{Goal: review, Start: dec("100"), End: dec("700"), Focus: dec("1"), Notes: ""})
	return s
}

func TestSessionDuration(t *testing.T) {
	s := sessionOfTwo()
	if !s.Duration().Equal(dec("600")) {
		t.Fatalf("duration: got %s, want 600", s.Duration())
	}
}

func TestSessionTagsAreUnionInFirstSeenOrder(t *testing.T) {
	s := sessionOfTwo()
	got := strings.Join(s.Tags(), ",")
	if got != "work,deep" {
		t.Fatalf("tags: got %q, want \"work,deep\"", got)
	}
}

func TestSessionDescriptionAndNotes(t *testing.T) {
	s := sessionOfTwo()
	if got := s.Description(); got != "write docs and review code" {
		t.Fatalf("description: got %q", got)
	}
	if got := s.Notes(); got != "intro|" {
		t.Fatalf("notes: got %q", got)
	}
}

func TestSessionSameTime(t *testing.T) {
	s := sessionOfTwo()
	same := Entry{Start: dec("100"), End: dec("700")}
	other := Entry{Start: dec("100"), End: dec("800")}
	if !s.SameTime(same) || s.SameTime(other) {
		t.Fatal("SameTime mismatch")
	}
}

func TestSessionGoalFocusPairs(t *testing.T) {
	pairs := sessionOfTwo().GoalFocusPairs()
	if len(pairs) != 2 {
		t.Fatalf("pairs: got %d", len(pairs))
	}
	if pairs[0].Goal.ID != 1 || !pairs[0].Focus.Equal(dec("2")) {
		t.Fatalf("first pair: goal %d focus %s", pairs[0].Goal.ID, pairs[0].Focus)
	}
}
