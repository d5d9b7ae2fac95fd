package entity

import (
	"time"

	"github.com/google/uuid"
)

type MovementClass string

const (
	MovementFreeWeight MovementClass = "free_weight"
	MovementBodyweight MovementClass = "bodyweight"
)

// ExerciseDefinition is catalog-seeded and immutable at runtime.
type ExerciseDefinition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	DayGroup    string        `json:"day_group"`
	Class       MovementClass `json:"class"`
	LoadFactor  float64       `json:"load_factor,omitempty"`
	Increment   float64       `json:"increment"`
	RestSeconds int           `json:"rest_seconds"`
	TracksLoad  bool          `json:"tracks_load"`
}

// SetRecord is one performed set. RIR is reps-in-reserve, 0 = at failure,
// only values 0-4 are recorded.
type SetRecord struct {
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
	RIR       int       `json:"rir"`
	Warmup    bool      `json:"warmup,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExerciseLog is the per-day snapshot of one exercise: at most one log
// exists per (Date, ExerciseID), a later save replaces the earlier one
// in full. Date is canonical YYYY-MM-DD.
type ExerciseLog struct {
	Date       string      `json:"date"`
	ExerciseID string      `json:"exercise_id"`
	Sets       []SetRecord `json:"sets"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Session is the continuous-ledger variant: sets accumulate against a
// session id instead of replacing a per-day snapshot.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Template string    `json:"template,omitempty"`
}

// SessionSet references its session and exercise. Weight may be negative
// here (assisted bodyweight variants).
type SessionSet struct {
	SessionID  uuid.UUID `json:"session_id"`
	ExerciseID string    `json:"exercise_id"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	RIR        int       `json:"rir"`
	Warmup     bool      `json:"warmup,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LedgerSnapshot is the whole locally persisted ledger. Save always
// rewrites it as a unit.
type LedgerSnapshot struct {
	Logs        []ExerciseLog `json:"logs"`
	Sessions    []Session     `json:"sessions,omitempty"`
	SessionSets []SessionSet  `json:"session_sets,omitempty"`
	Template    string        `json:"template"`
	Bodyweight  float64       `json:"bodyweight"`
}

// TrainingLogRow is the remote-store shape of one ExerciseLog, keyed by
// (ClientID, Date, ExerciseID).
type TrainingLogRow struct {
	ClientID     string      `json:"client_id"`
	Date         string      `json:"date"`
	ExerciseID   string      `json:"exercise_id"`
	DayLabel     string      `json:"day_label"`
	ExerciseName string      `json:"exercise_name"`
	Sets         []SetRecord `json:"sets"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RestOverrideRow mirrors one local rest override on the remote store.
type RestOverrideRow struct {
	ClientID   string `json:"client_id"`
	ExerciseID string `json:"exercise_id"`
	Seconds    int    `json:"seconds"`
}
