// Package tracker executes the compound time-logging shorthand against the
// goal set and knows how to undo exactly what it did.
//
// Grammar, fields separated by the configured separator (default ","):
//
//	goalSpec[,timeSpec[,notes[,completeFlag]]]
//
// goalSpec logs several simultaneous goals with "/" and per-goal focus with
// ":": "write:2/review" is focus 2 on "write" plus focus 1 on "review".
// An empty command repeats the previous session's goal/focus pairs ending now.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/config"
	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/resolve"
	"github.com/mkrylov/goalie/internal/store"
	"github.com/mkrylov/goalie/internal/timespec"
)

// epochSentinel anchors the very first entry of a fresh log, when there is no
// previous session to continue from.
var epochSentinel = decimal.RequireFromString("1339427450.91")

var one = decimal.NewFromInt(1)

// Tracker wires the command grammar to the storage and prompt collaborators.
type Tracker struct {
	Store    store.Store
	Prompter resolve.Prompter
	Config   config.Config
	Loc      *time.Location
}

// Record remembers one LogTime call: the goal/focus pairs appended and each
// goal's completion state beforehand. Undo applied to a Record is a strict
// inverse of the LogTime that produced it.
type Record struct {
	Pairs         []models.GoalFocus
	Start         decimal.Decimal
	End           decimal.Decimal
	prevCompleted []*decimal.Decimal
	restoreFlags  bool
}

// RecordFromSession rebuilds an undo record from a previously merged session,
// for undoing across process restarts. Completion flags are not tracked by
// sessions and are left untouched by such an undo.
func RecordFromSession(session *models.Session) *Record {
	return &Record{
		Pairs: session.GoalFocusPairs(),
		Start: session.Start,
		End:   session.End,
	}
}

// LogTime parses and applies one shorthand command. Every referenced goal gets
// the new progress entry appended and is persisted; parse and lookup failures
// leave all goals untouched.
func (t *Tracker) LogTime(command string, goals map[int64]*models.Goal, prev *models.Session, now decimal.Decimal) (*Record, error) {
	command = strings.TrimSpace(command)

	ref := epochSentinel
	if prev != nil {
		ref = prev.End
	}

	var (
		goalData, timeData, notes string
		complete                  bool
		pairs                     []models.GoalFocus
		end                       decimal.Decimal
		endSet                    bool
	)

	if !strings.Contains(command, t.Config.Separator) {
		end, endSet = now, true
		if command == "" {
			if prev == nil {
				return nil, fmt.Errorf("%w: nothing to repeat", apperrors.ErrMalformedCommand)
			}
			pairs = prev.GoalFocusPairs()
		} else {
			goalData = command
		}
	} else {
		fields := strings.Split(command, t.Config.Separator)
		if len(fields) > t.Config.MaxFields {
			return nil, fmt.Errorf("%w: expected at most %d fields, got %d", apperrors.ErrMalformedCommand, t.Config.MaxFields, len(fields))
		}
		switch len(fields) {
		case 2:
			goalData, timeData = fields[0], fields[1]
		case 3:
			goalData, timeData, notes = fields[0], fields[1], fields[2]
		case 4:
			goalData, timeData, notes = fields[0], fields[1], fields[2]
			complete = strings.TrimSpace(fields[3]) == "1"
		default:
			return nil, fmt.Errorf("%w: expected at most %d fields, got %d", apperrors.ErrMalformedCommand, t.Config.MaxFields, len(fields))
		}
	}
	notes = strings.TrimSpace(notes)

	if pairs == nil {
		var err error
		pairs, err = t.resolvePairs(goalData, goals)
		if err != nil {
			return nil, err
		}
	}

	if !endSet {
		duration, err := timespec.Resolve(timeData, ref, now, t.Loc)
		if err != nil {
			return nil, err
		}
		end = ref.Add(duration)
	}
	if end.Cmp(ref) < 0 {
		return nil, fmt.Errorf("%w: end time precedes the previous session", apperrors.ErrInvalidTimeSpec)
	}

	rec := &Record{Pairs: pairs, Start: ref, End: end, restoreFlags: true}
	for _, pair := range pairs {
		rec.prevCompleted = append(rec.prevCompleted, pair.Goal.CompletedAt)
	}
	for _, pair := range pairs {
		pair.Goal.AddTime(ref, end, pair.Focus, notes, complete, now)
	}
	for _, pair := range pairs {
		if err := t.Store.Save(pair.Goal); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// resolvePairs parses the "/"-separated goal subspecs, resolving each through
// the goal resolver.
func (t *Tracker) resolvePairs(goalData string, goals map[int64]*models.Goal) ([]models.GoalFocus, error) {
	var pairs []models.GoalFocus
	for _, sub := range strings.Split(goalData, "/") {
		name, focus := sub, one
		if i := strings.Index(sub, ":"); i >= 0 {
			name = sub[:i]
			parsed, err := decimal.NewFromString(strings.TrimSpace(sub[i+1:]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad focus amount in %q", apperrors.ErrMalformedCommand, sub)
			}
			focus = parsed
		}
		goal, err := resolve.Goal(name, goals, t.Prompter)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, models.GoalFocus{Goal: goal, Focus: focus})
	}
	return pairs, nil
}

// Undo pops the most recent progress entry from every goal the record touched
// and, for records produced in this process, restores their completion state.
func (t *Tracker) Undo(rec *Record) error {
	if rec == nil || len(rec.Pairs) == 0 {
		return fmt.Errorf("%w: nothing to undo", apperrors.ErrMalformedCommand)
	}
	for i, pair := range rec.Pairs {
		if err := pair.Goal.UndoAddTime(); err != nil {
			return err
		}
		if rec.restoreFlags {
			pair.Goal.CompletedAt = rec.prevCompleted[i]
		}
	}
	for _, pair := range rec.Pairs {
		if err := t.Store.Save(pair.Goal); err != nil {
			return err
		}
	}
	return nil
}

// CreateGoal allocates the next id, builds the goal and persists it. Empty
// component maps get defaults: a unit value and a unit time estimate, no
// costs.
func (t *Tracker) CreateGoal(description string, tags []string, value, cost, timeComps map[string]models.Range, now decimal.Decimal) (*models.Goal, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrMalformedCommand)
	}
	id, err := t.Store.NextID()
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		value = map[string]models.Range{"default": models.PointRange(one)}
	}
	if len(timeComps) == 0 {
		timeComps = map[string]models.Range{"default": models.PointRange(one)}
	}
	if cost == nil {
		cost = map[string]models.Range{}
	}
	goal := &models.Goal{
		ID:              id,
		Description:     strings.TrimSpace(description),
		Tags:            tags,
		ValueComponents: value,
		CostComponents:  cost,
		TimeComponents:  timeComps,
		CreatedAt:       now,
	}
	if err := t.Store.Save(goal); err != nil {
		return nil, err
	}
	if err := t.Store.AdvanceID(); err != nil {
		return nil, err
	}
	return goal, nil
}
