// Package resolve matches free-form user text to a goal, by id or by title
// substring, asking the user to pick when the text is ambiguous.
package resolve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/models"
)

// Prompter blocks for one line of user text. The interactive UI provides the
// real one; tests script answers.
type Prompter interface {
	Ask(message string) (string, error)
}

// Goal finds the goal the user is referring to. Integer text is an id lookup.
// Anything else is a case-folded substring match against goal titles: a single
// exact title match wins over partial matches, a single partial match wins,
// no match is ErrGoalNotFound, and several matches are disambiguated through
// the prompter.
func Goal(text string, goals map[int64]*models.Goal, prompter Prompter) (*models.Goal, error) {
	text = strings.TrimSpace(text)

	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		goal, ok := goals[id]
		if !ok {
			return nil, fmt.Errorf("%w: no goal #%d", apperrors.ErrGoalNotFound, id)
		}
		return goal, nil
	}

	needle := strings.ToLower(text)
	var partial, exact []*models.Goal
	for _, goal := range goals {
		title := strings.ToLower(goal.Title())
		if strings.Contains(title, needle) {
			partial = append(partial, goal)
			if title == needle {
				exact = append(exact, goal)
			}
		}
	}
	// Map iteration order is random; keep the candidate list stable for the
	// user's numbered choice.
	sort.Slice(partial, func(i, j int) bool { return partial[i].ID < partial[j].ID })

	if len(exact) == 1 {
		return exact[0], nil
	}
	if len(partial) == 1 {
		return partial[0], nil
	}
	if len(partial) == 0 {
		return nil, fmt.Errorf("%w: no goal matches %q", apperrors.ErrGoalNotFound, text)
	}
	return disambiguate(text, partial, prompter)
}

// disambiguate lists the candidates and resolves the user's numeric choice.
func disambiguate(text string, candidates []*models.Goal, prompter Prompter) (*models.Goal, error) {
	if prompter == nil {
		return nil, fmt.Errorf("%w: %d goals match %q", apperrors.ErrAmbiguousGoal, len(candidates), text)
	}
	lines := make([]string, 0, len(candidates))
	for i, goal := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s", i, goal.Title()))
	}
	answer, err := prompter.Ask(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAmbiguousGoal, err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || choice < 0 || choice >= len(candidates) {
		return nil, fmt.Errorf("%w: choice %q out of range", apperrors.ErrAmbiguousGoal, answer)
	}
	return candidates[choice], nil
}
