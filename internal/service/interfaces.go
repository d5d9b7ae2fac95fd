package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/limbo/ironlog/internal/advisor"
	"github.com/limbo/ironlog/internal/syncengine"
	"github.com/limbo/ironlog/pkg/entity"
)

type SetInput struct {
	Reps   int     `json:"reps" validate:"gt=0"`
	Weight float64 `json:"weight" validate:"gte=0"`
	RIR    int     `json:"rir" validate:"gte=0,lte=4"`
	Warmup bool    `json:"warmup"`
}

type SaveLogRequest struct {
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	ExerciseID string     `json:"exercise_id" validate:"required,catalog_exercise"`
	Sets       []SetInput `json:"sets" validate:"min=1,dive"`
}

type SessionSetRequest struct {
	SessionID  uuid.UUID `json:"session_id"`
	ExerciseID string    `json:"exercise_id" validate:"required,catalog_exercise"`
	Reps       int       `json:"reps" validate:"gt=0"`
	Weight     float64   `json:"weight"`
	RIR        int       `json:"rir" validate:"gte=0,lte=4"`
	Warmup     bool      `json:"warmup"`
}

type WeekComparison struct {
	Current       *entity.ExerciseLog `json:"current,omitempty"`
	PriorWeek     *entity.ExerciseLog `json:"prior_week,omitempty"`
	CurrentBest   float64             `json:"current_best_e1rm"`
	PriorWeekBest float64             `json:"prior_week_best_e1rm"`
}

type LedgerServiceI interface {
	// Validates and commits a per-day log, replacing any log already
	// recorded for the same (date, exercise) pair
	SaveLog(ctx context.Context, req *SaveLogRequest) (*entity.ExerciseLog, error)
	// Commits a working-set edit after a quiet interval; rapid edits
	// coalesce and only the newest one lands
	StageLog(ctx context.Context, req *SaveLogRequest) error
	// Newest log for the exercise dated on or before the optional cutoff
	Latest(ctx context.Context, exerciseID, before string) (*entity.ExerciseLog, error)
	// Week-over-week comparison around the given date
	Comparison(ctx context.Context, exerciseID, date string) (*WeekComparison, error)
	// Progression advice built from the most recent log
	Suggest(ctx context.Context, exerciseID string) (*advisor.Suggestion, error)
	// Opens a continuous-ledger session
	StartSession(ctx context.Context, date, template string) (*entity.Session, error)
	// Appends one set to an open session
	LogSessionSet(ctx context.Context, req *SessionSetRequest) error
	// Current sync engine status signal
	SyncStatus() syncengine.Status
}

type RestServiceI interface {
	// Stores an override clamped to [10, 999] seconds
	SetOverride(ctx context.Context, exerciseID string, seconds int) (int, error)
	// Override if present, catalog default otherwise
	Duration(ctx context.Context, exerciseID string) (int, error)
	// Resolves the duration and hands it to the rest-timer collaborator
	StartRest(ctx context.Context, exerciseID string, notify bool) (int, error)
}

// RestTimer is the countdown collaborator. It consumes a duration and a
// notification flag and feeds nothing back into the core.
type RestTimer interface {
	Start(seconds int, notify bool)
}

// SyncNotifier is what the services need from the sync engine.
type SyncNotifier interface {
	NotifyLedgerChanged()
	NotifyOverridesChanged()
	Status() syncengine.Status
}
