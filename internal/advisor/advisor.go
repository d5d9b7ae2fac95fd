package advisor

import (
	"github.com/limbo/ironlog/pkg/entity"
)

// Package advisor holds the progression math. Everything here is a pure
// function over catalog definitions and recorded sets, no I/O.

// EstimatedMax is the Epley single-rep estimate. A single (or zero) rep
// set is taken at face value.
func EstimatedMax(load float64, reps int) float64 {
	if reps <= 1 {
		return load
	}
	return load * (1 + float64(reps)/30)
}

// EffectiveLoad normalizes a set onto the free-weight load scale. For
// bodyweight movements the lifter's mass times the catalog load factor
// counts as resistance; external may be negative (assisted) or positive
// (weighted). Free-weight movements pass external through untouched.
func EffectiveLoad(ex *entity.ExerciseDefinition, bodyweight, external float64) float64 {
	if ex.Class != entity.MovementBodyweight {
		return external
	}
	factor := ex.LoadFactor
	if factor == 0 {
		factor = 1.0
	}
	return bodyweight*factor + external
}

type Suggestion struct {
	HasWeight bool    `json:"has_weight"`
	Weight    float64 `json:"weight,omitempty"`
	Reps      int     `json:"reps"`
	Message   string  `json:"message"`
}

// SuggestNext derives advice from the newest entry of oldestFirst, which
// the caller must pass in chronological order, oldest set first. With no
// history it proposes a conservative 8-rep starting point and no weight.
//
// RIR 2 intentionally lands on the same numbers as RIR<=1; only the
// wording differs.
func SuggestNext(ex *entity.ExerciseDefinition, oldestFirst []entity.SetRecord) Suggestion {
	if len(oldestFirst) == 0 {
		return Suggestion{
			Reps:    8,
			Message: "no history yet, start light and aim for 8 reps",
		}
	}
	last := oldestFirst[len(oldestFirst)-1]
	switch {
	case last.RIR >= 3:
		return Suggestion{
			HasWeight: true,
			Weight:    last.Weight + ex.Increment,
			Reps:      last.Reps,
			Message:   "last set was easy, add weight",
		}
	case last.RIR <= 1:
		return Suggestion{
			HasWeight: true,
			Weight:    last.Weight,
			Reps:      last.Reps + 1,
			Message:   "you were near your limit, keep the weight and add a rep",
		}
	default:
		return Suggestion{
			HasWeight: true,
			Weight:    last.Weight,
			Reps:      last.Reps + 1,
			Message:   "solid effort, add a rep at the same weight",
		}
	}
}
