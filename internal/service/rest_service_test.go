package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/internal/service"
)

type timerMock struct {
	seconds int
	notify  bool
	started int
}

func (m *timerMock) Start(seconds int, notify bool) {
	m.seconds = seconds
	m.notify = notify
	m.started++
}

func TestSetOverride(t *testing.T) {
	store := newStoreMock()
	notifier := &notifierMock{}
	rs := service.NewRestService(store, notifier, nil)
	ctx := context.Background()
	t.Run("stored as given inside range", func(t *testing.T) {
		seconds, err := rs.SetOverride(ctx, "bench", 120)
		assert.NoError(t, err)
		assert.Equal(t, 120, seconds)
	})
	t.Run("clamped up to the floor", func(t *testing.T) {
		seconds, err := rs.SetOverride(ctx, "bench", 5)
		assert.NoError(t, err)
		assert.Equal(t, 10, seconds)
	})
	t.Run("clamped down to the ceiling", func(t *testing.T) {
		seconds, err := rs.SetOverride(ctx, "bench", 2000)
		assert.NoError(t, err)
		assert.Equal(t, 999, seconds)
	})
	t.Run("unknown exercise", func(t *testing.T) {
		_, err := rs.SetOverride(ctx, "zercher_carry", 120)
		assert.ErrorIs(t, err, errorvalues.ErrExerciseNotFound)
	})
	t.Run("engine notified per change", func(t *testing.T) {
		assert.Equal(t, 3, notifier.overrideChanges)
	})
}

func TestDuration(t *testing.T) {
	store := newStoreMock()
	rs := service.NewRestService(store, &notifierMock{}, nil)
	ctx := context.Background()
	t.Run("catalog default without override", func(t *testing.T) {
		seconds, err := rs.Duration(ctx, "bench")
		assert.NoError(t, err)
		assert.Equal(t, 180, seconds)
	})
	t.Run("override wins", func(t *testing.T) {
		_, err := rs.SetOverride(ctx, "bench", 90)
		assert.NoError(t, err)
		seconds, err := rs.Duration(ctx, "bench")
		assert.NoError(t, err)
		assert.Equal(t, 90, seconds)
	})
}

func TestStartRest(t *testing.T) {
	store := newStoreMock()
	timer := &timerMock{}
	rs := service.NewRestService(store, &notifierMock{}, timer)
	ctx := context.Background()

	seconds, err := rs.StartRest(ctx, "squat", true)
	assert.NoError(t, err)
	assert.Equal(t, 180, seconds)
	assert.Equal(t, 1, timer.started)
	assert.Equal(t, 180, timer.seconds)
	assert.True(t, timer.notify)
}
