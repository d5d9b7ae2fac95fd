package history

import (
	"time"

	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/pkg/entity"
)

// Package history answers date-aware read-only questions over the ledger.
// Dates are canonical YYYY-MM-DD, so lexicographic comparison is
// chronological comparison.

const dateLayout = "2006-01-02"

// MostRecentLog returns the newest log for exerciseID dated on or before
// cutoff. An empty cutoff means no cutoff. Two logs on the same date
// (possible transiently during migration or a remote merge) tie-break on
// the later CreatedAt, then on the later slice position.
func MostRecentLog(exerciseID string, logs []entity.ExerciseLog, cutoff string) (*entity.ExerciseLog, bool) {
	var best *entity.ExerciseLog
	for i := range logs {
		l := &logs[i]
		if l.ExerciseID != exerciseID {
			continue
		}
		if cutoff != "" && l.Date > cutoff {
			continue
		}
		if best == nil || l.Date > best.Date {
			best = l
			continue
		}
		if l.Date == best.Date && !l.CreatedAt.Before(best.CreatedAt) {
			best = l
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// PriorWeekSnapshot runs MostRecentLog against a cutoff seven calendar
// days before date, rolling over months and years correctly.
func PriorWeekSnapshot(exerciseID string, logs []entity.ExerciseLog, date string) (*entity.ExerciseLog, bool, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, false, errorvalues.ErrBadDate
	}
	cutoff := day.AddDate(0, 0, -7).Format(dateLayout)
	log, ok := MostRecentLog(exerciseID, logs, cutoff)
	return log, ok, nil
}
