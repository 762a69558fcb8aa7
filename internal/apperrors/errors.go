package apperrors

import "errors"

var (
	ErrInvalidTimeSpec  = errors.New("invalid time spec")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrAmbiguousGoal    = errors.New("ambiguous goal reference")
	ErrMalformedCommand = errors.New("malformed command")
	ErrPersistence      = errors.New("persistence failure")
)
