package resttimer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func (t *Timer) hasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func TestStartWithoutNotify(t *testing.T) {
	timer := New()
	timer.Start(60, false)
	assert.False(t, timer.hasPending())
}

func TestStopCancelsPendingNotification(t *testing.T) {
	timer := New()
	timer.unit = time.Hour
	timer.Start(1, true)
	assert.True(t, timer.hasPending())

	assert.NoError(t, timer.Stop())
	assert.False(t, timer.hasPending())

	t.Run("stop with nothing pending is a no-op", func(t *testing.T) {
		assert.NoError(t, timer.Stop())
	})
}

func TestNotificationClearsItself(t *testing.T) {
	timer := New()
	timer.unit = time.Millisecond
	timer.Start(1, true)
	assert.Eventually(t, func() bool {
		return !timer.hasPending()
	}, time.Second, 5*time.Millisecond)
}
