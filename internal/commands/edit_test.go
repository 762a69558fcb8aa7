package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func editableGoal() *models.Goal {
	return &models.Goal{
		ID:          4,
		Description: "write. finish the novel",
		Thoughts:    "outline first",
		Tags:        []string{"work"},
		ValueComponents: map[string]models.Range{
			"default": {Low: dec("90"), High: dec("110")},
		},
		CostComponents: map[string]models.Range{},
		TimeComponents: map[string]models.Range{
			"default": models.PointRange(dec("60")),
		},
		Progress: []models.ProgressEntry{
			{Start: dec("100"), End: dec("200"), Focus: dec("1")},
		},
	}
}

func TestGoalDocRoundTrip(t *testing.T) {
	goal := editableGoal()
	data, err := encodeGoalDoc(goal)
	if err != nil {
		t.Fatalf("encodeGoalDoc: %v", err)
	}
	if err := applyGoalDoc(goal, data); err != nil {
		t.Fatalf("applyGoalDoc: %v", err)
	}
	if goal.Description != "write. finish the novel" || goal.Thoughts != "outline first" {
		t.Fatalf("round trip changed text: %q / %q", goal.Description, goal.Thoughts)
	}
	if !goal.ValueComponents["default"].High.Equal(dec("110")) {
		t.Fatalf("round trip changed estimates: %v", goal.ValueComponents)
	}
	if len(goal.Progress) != 1 {
		t.Fatalf("round trip touched progress: %d entries", len(goal.Progress))
	}
}

func TestApplyGoalDocEdits(t *testing.T) {
	goal := editableGoal()
	doc := `
description: "write. second draft"
thoughts: "cut chapter two"
tags: [work, evening]
values:
  default: {low: "50", high: "70"}
times:
  default: {low: "120", high: "120"}
`
	if err := applyGoalDoc(goal, []byte(doc)); err != nil {
		t.Fatalf("applyGoalDoc: %v", err)
	}
	if goal.Description != "write. second draft" || goal.Thoughts != "cut chapter two" {
		t.Fatalf("text fields: got %q / %q", goal.Description, goal.Thoughts)
	}
	if len(goal.Tags) != 2 || goal.Tags[1] != "evening" {
		t.Fatalf("tags: got %v", goal.Tags)
	}
	if !goal.TotalEstimatedValue().Equal(dec("60")) || !goal.TotalEstimatedTime().Equal(dec("120")) {
		t.Fatalf("estimates: value %s time %s", goal.TotalEstimatedValue(), goal.TotalEstimatedTime())
	}
	if len(goal.CostComponents) != 0 {
		t.Fatalf("costs: got %v", goal.CostComponents)
	}
}

func TestApplyGoalDocRejectsEmptyDescription(t *testing.T) {
	goal := editableGoal()
	err := applyGoalDoc(goal, []byte("description: \"   \"\n"))
	if !errors.Is(err, apperrors.ErrMalformedCommand) {
		t.Fatalf("got %v, want ErrMalformedCommand", err)
	}
	if goal.Description != "write. finish the novel" {
		t.Fatal("goal mutated on rejected edit")
	}
}

func TestApplyGoalDocRejectsUnknownKeys(t *testing.T) {
	goal := editableGoal()
	doc := "description: ok\nprogress: []\n"
	if err := applyGoalDoc(goal, []byte(doc)); !errors.Is(err, apperrors.ErrMalformedCommand) {
		t.Fatalf("got %v, want ErrMalformedCommand", err)
	}
}

func TestApplyGoalDocRejectsBadEstimate(t *testing.T) {
	goal := editableGoal()
	doc := `
description: ok
values:
  default: {low: "ten", high: "20"}
`
	err := applyGoalDoc(goal, []byte(doc))
	if !errors.Is(err, apperrors.ErrMalformedCommand) {
		t.Fatalf("got %v, want ErrMalformedCommand", err)
	}
	if !strings.Contains(err.Error(), "ten") {
		t.Fatalf("error should name the bad bound: %v", err)
	}
	if !goal.ValueComponents["default"].Low.Equal(dec("90")) {
		t.Fatal("goal mutated on rejected edit")
	}
}
