package errorvalues

import "errors"

var (
	ErrExerciseNotFound = errors.New("unknown exercise")
	ErrLogNotFound      = errors.New("no log recorded for exercise")
	ErrSessionNotFound  = errors.New("session doesn't exist")
	ErrNoSets           = errors.New("log contains no sets")
	ErrInvalidReps      = errors.New("completed set needs positive reps")
	ErrNegativeLoad     = errors.New("load can't be negative")
	ErrBadDate          = errors.New("date must be YYYY-MM-DD")
	ErrRemoteOffline    = errors.New("remote store is not reachable")
)
