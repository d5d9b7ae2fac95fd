package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limbo/ironlog/internal/advisor"
	"github.com/limbo/ironlog/pkg/entity"
)

var (
	benchDef = entity.ExerciseDefinition{
		ID:        "bench",
		Name:      "Bench Press",
		Class:     entity.MovementFreeWeight,
		Increment: 2.5,
	}
	pullupDef = entity.ExerciseDefinition{
		ID:         "pullup",
		Name:       "Pull-Up",
		Class:      entity.MovementBodyweight,
		LoadFactor: 1.0,
		Increment:  2.5,
	}
	dipDef = entity.ExerciseDefinition{
		ID:         "dip",
		Name:       "Dip",
		Class:      entity.MovementBodyweight,
		LoadFactor: 0.95,
		Increment:  2.5,
	}
)

func TestEstimatedMax(t *testing.T) {
	t.Run("single rep is face value", func(t *testing.T) {
		assert.Equal(t, 100.0, advisor.EstimatedMax(100, 1))
	})
	t.Run("zero reps is face value", func(t *testing.T) {
		assert.Equal(t, 100.0, advisor.EstimatedMax(100, 0))
	})
	t.Run("epley above one rep", func(t *testing.T) {
		assert.InDelta(t, 100*(1+8.0/30), advisor.EstimatedMax(100, 8), 1e-9)
		assert.InDelta(t, 60*(1+5.0/30), advisor.EstimatedMax(60, 5), 1e-9)
	})
	t.Run("zero load stays zero", func(t *testing.T) {
		assert.Equal(t, 0.0, advisor.EstimatedMax(0, 12))
	})
}

func TestEffectiveLoad(t *testing.T) {
	t.Run("free weight passes external through", func(t *testing.T) {
		assert.Equal(t, 80.0, advisor.EffectiveLoad(&benchDef, 75, 80))
		assert.Equal(t, 80.0, advisor.EffectiveLoad(&benchDef, 120, 80))
	})
	t.Run("bodyweight adds scaled mass", func(t *testing.T) {
		assert.InDelta(t, 75*0.95+10, advisor.EffectiveLoad(&dipDef, 75, 10), 1e-9)
	})
	t.Run("assisted variant subtracts", func(t *testing.T) {
		assert.InDelta(t, 75-20, advisor.EffectiveLoad(&pullupDef, 75, -20), 1e-9)
	})
	t.Run("unset factor defaults to full bodyweight", func(t *testing.T) {
		def := entity.ExerciseDefinition{ID: "chinup", Class: entity.MovementBodyweight}
		assert.InDelta(t, 75.0, advisor.EffectiveLoad(&def, 75, 0), 1e-9)
	})
}

func TestSuggestNext(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		got := advisor.SuggestNext(&benchDef, nil)
		assert.False(t, got.HasWeight)
		assert.Equal(t, 8, got.Reps)
		assert.NotEmpty(t, got.Message)
	})
	t.Run("easy set adds weight", func(t *testing.T) {
		got := advisor.SuggestNext(&benchDef, []entity.SetRecord{
			{Weight: 60, Reps: 8, RIR: 3},
		})
		assert.True(t, got.HasWeight)
		assert.Equal(t, 62.5, got.Weight)
		assert.Equal(t, 8, got.Reps)
	})
	t.Run("near limit adds a rep", func(t *testing.T) {
		got := advisor.SuggestNext(&benchDef, []entity.SetRecord{
			{Weight: 60, Reps: 8, RIR: 1},
		})
		assert.True(t, got.HasWeight)
		assert.Equal(t, 60.0, got.Weight)
		assert.Equal(t, 9, got.Reps)
	})
	t.Run("rir 2 matches near-limit numbers", func(t *testing.T) {
		nearLimit := advisor.SuggestNext(&benchDef, []entity.SetRecord{
			{Weight: 60, Reps: 8, RIR: 1},
		})
		middle := advisor.SuggestNext(&benchDef, []entity.SetRecord{
			{Weight: 60, Reps: 8, RIR: 2},
		})
		assert.Equal(t, nearLimit.Weight, middle.Weight)
		assert.Equal(t, nearLimit.Reps, middle.Reps)
		assert.NotEqual(t, nearLimit.Message, middle.Message)
	})
	t.Run("only the newest set counts", func(t *testing.T) {
		got := advisor.SuggestNext(&benchDef, []entity.SetRecord{
			{Weight: 50, Reps: 10, RIR: 4},
			{Weight: 60, Reps: 8, RIR: 0},
		})
		assert.Equal(t, 60.0, got.Weight)
		assert.Equal(t, 9, got.Reps)
	})
}
