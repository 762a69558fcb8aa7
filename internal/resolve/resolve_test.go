package resolve

import (
	"errors"
	"testing"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/models"
)

type scriptedPrompter struct {
	answer string
	err    error
	asked  string
}

func (p *scriptedPrompter) Ask(message string) (string, error) {
	p.asked = message
	return p.answer, p.err
}

func testGoals() map[int64]*models.Goal {
	return map[int64]*models.Goal{
		1: {ID: 1, Description: "write. finish the novel"},
		2: {ID: 2, Description: "write more. second draft"},
		3: {ID: 3, Description: "exercise. morning run"},
	}
}

func TestGoalByID(t *testing.T) {
	goal, err := Goal("2", testGoals(), nil)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if goal.ID != 2 {
		t.Fatalf("got goal #%d, want #2", goal.ID)
	}
}

func TestGoalByUnknownID(t *testing.T) {
	if _, err := Goal("42", testGoals(), nil); !errors.Is(err, apperrors.ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}

func TestGoalBySubstring(t *testing.T) {
	goal, err := Goal("exer", testGoals(), nil)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if goal.ID != 3 {
		t.Fatalf("got goal #%d, want #3", goal.ID)
	}
}

func TestGoalCaseFolded(t *testing.T) {
	goal, err := Goal("EXERCISE", testGoals(), nil)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if goal.ID != 3 {
		t.Fatalf("got goal #%d, want #3", goal.ID)
	}
}

func TestGoalExactTitleBeatsPartialMatches(t *testing.T) {
	// "write" is a substring of both titles but the exact title of goal 1.
	goal, err := Goal("write", testGoals(), nil)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if goal.ID != 1 {
		t.Fatalf("got goal #%d, want #1", goal.ID)
	}
}

func TestGoalNoMatch(t *testing.T) {
	if _, err := Goal("swim", testGoals(), nil); !errors.Is(err, apperrors.ErrGoalNotFound) {
		t.Fatalf("got %v, want ErrGoalNotFound", err)
	}
}

func TestGoalAmbiguousPrompts(t *testing.T) {
	p := &scriptedPrompter{answer: "1"}
	goal, err := Goal("writ", testGoals(), p)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	// Candidates are listed in id order, so choice 1 is goal 2.
	if goal.ID != 2 {
		t.Fatalf("got goal #%d, want #2", goal.ID)
	}
	if p.asked == "" {
		t.Fatal("prompter was never asked")
	}
}

func TestGoalAmbiguousChoiceOutOfRange(t *testing.T) {
	for _, answer := range []string{"5", "-1", "nope"} {
		p := &scriptedPrompter{answer: answer}
		if _, err := Goal("writ", testGoals(), p); !errors.Is(err, apperrors.ErrAmbiguousGoal) {
			t.Fatalf("answer %q: got %v, want ErrAmbiguousGoal", answer, err)
		}
	}
}

func TestGoalAmbiguousWithoutPrompter(t *testing.T) {
	if _, err := Goal("writ", testGoals(), nil); !errors.Is(err, apperrors.ErrAmbiguousGoal) {
		t.Fatalf("got %v, want ErrAmbiguousGoal", err)
	}
}
