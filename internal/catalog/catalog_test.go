package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limbo/ironlog/internal/catalog"
	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/pkg/entity"
)

func TestByID(t *testing.T) {
	t.Run("known movement", func(t *testing.T) {
		ex, err := catalog.ByID("bench")
		assert.NoError(t, err)
		assert.Equal(t, "Bench Press", ex.Name)
		assert.Equal(t, entity.MovementFreeWeight, ex.Class)
	})
	t.Run("unknown movement", func(t *testing.T) {
		_, err := catalog.ByID("zercher_carry")
		assert.ErrorIs(t, err, errorvalues.ErrExerciseNotFound)
	})
}

func TestCatalogShape(t *testing.T) {
	t.Run("bodyweight movements carry a load factor", func(t *testing.T) {
		for _, ex := range catalog.All() {
			if ex.Class == entity.MovementBodyweight && ex.TracksLoad {
				assert.Greater(t, ex.LoadFactor, 0.0, ex.ID)
			}
		}
	})
	t.Run("load-tracked movements have an increment or bodyweight scaling", func(t *testing.T) {
		for _, ex := range catalog.All() {
			if ex.Class == entity.MovementFreeWeight {
				assert.True(t, ex.TracksLoad, ex.ID)
				assert.Greater(t, ex.Increment, 0.0, ex.ID)
			}
		}
	})
	t.Run("day groups filter", func(t *testing.T) {
		push := catalog.ByDayGroup("push")
		assert.NotEmpty(t, push)
		for _, ex := range push {
			assert.Equal(t, "push", ex.DayGroup)
		}
	})
}
