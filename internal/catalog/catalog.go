package catalog

import (
	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/pkg/entity"
)

// Seeded movement catalog. Load factors for bodyweight movements are the
// fraction of bodyweight moved through the working range.
var exercises = []entity.ExerciseDefinition{
	{ID: "squat", Name: "Back Squat", DayGroup: "legs", Class: entity.MovementFreeWeight, Increment: 2.5, RestSeconds: 180, TracksLoad: true},
	{ID: "deadlift", Name: "Deadlift", DayGroup: "pull", Class: entity.MovementFreeWeight, Increment: 5, RestSeconds: 240, TracksLoad: true},
	{ID: "bench", Name: "Bench Press", DayGroup: "push", Class: entity.MovementFreeWeight, Increment: 2.5, RestSeconds: 180, TracksLoad: true},
	{ID: "ohp", Name: "Overhead Press", DayGroup: "push", Class: entity.MovementFreeWeight, Increment: 1.25, RestSeconds: 150, TracksLoad: true},
	{ID: "row", Name: "Barbell Row", DayGroup: "pull", Class: entity.MovementFreeWeight, Increment: 2.5, RestSeconds: 150, TracksLoad: true},
	{ID: "rdl", Name: "Romanian Deadlift", DayGroup: "legs", Class: entity.MovementFreeWeight, Increment: 2.5, RestSeconds: 180, TracksLoad: true},
	{ID: "curl", Name: "Dumbbell Curl", DayGroup: "pull", Class: entity.MovementFreeWeight, Increment: 1, RestSeconds: 90, TracksLoad: true},
	{ID: "pullup", Name: "Pull-Up", DayGroup: "pull", Class: entity.MovementBodyweight, LoadFactor: 1.0, Increment: 2.5, RestSeconds: 180, TracksLoad: true},
	{ID: "chinup", Name: "Chin-Up", DayGroup: "pull", Class: entity.MovementBodyweight, LoadFactor: 1.0, Increment: 2.5, RestSeconds: 180, TracksLoad: true},
	{ID: "dip", Name: "Dip", DayGroup: "push", Class: entity.MovementBodyweight, LoadFactor: 0.95, Increment: 2.5, RestSeconds: 150, TracksLoad: true},
	{ID: "pushup", Name: "Push-Up", DayGroup: "push", Class: entity.MovementBodyweight, LoadFactor: 0.64, Increment: 0, RestSeconds: 90, TracksLoad: true},
	{ID: "plank", Name: "Plank", DayGroup: "core", Class: entity.MovementBodyweight, RestSeconds: 60, TracksLoad: false},
	{ID: "hanging_knee_raise", Name: "Hanging Knee Raise", DayGroup: "core", Class: entity.MovementBodyweight, RestSeconds: 90, TracksLoad: false},
	{ID: "couch_stretch", Name: "Couch Stretch", DayGroup: "mobility", Class: entity.MovementBodyweight, RestSeconds: 10, TracksLoad: false},
}

// ByID looks up a catalog movement.
func ByID(id string) (*entity.ExerciseDefinition, error) {
	for i := range exercises {
		if exercises[i].ID == id {
			return &exercises[i], nil
		}
	}
	return nil, errorvalues.ErrExerciseNotFound
}

// All returns the catalog in seed order.
func All() []entity.ExerciseDefinition {
	out := make([]entity.ExerciseDefinition, len(exercises))
	copy(out, exercises)
	return out
}

// ByDayGroup lists movements tagged with the given day group.
func ByDayGroup(group string) []entity.ExerciseDefinition {
	out := make([]entity.ExerciseDefinition, 0)
	for _, ex := range exercises {
		if ex.DayGroup == group {
			out = append(out, ex)
		}
	}
	return out
}
