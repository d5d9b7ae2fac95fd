package resttimer

import (
	"log/slog"
	"sync"
	"time"
)

// Timer is the default rest-timer collaborator: it consumes a duration
// and a notification flag and emits nothing back. The countdown side
// effects (audio, vibration) live outside the core; this one just logs.
type Timer struct {
	mu      sync.Mutex
	pending *time.Timer
	unit    time.Duration
}

func New() *Timer {
	return &Timer{unit: time.Second}
}

func (t *Timer) Start(seconds int, notify bool) {
	slog.Info("rest timer started", slog.Int("seconds", seconds), slog.Bool("notify", notify))
	if !notify {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(time.Duration(seconds)*t.unit, t.fire)
}

func (t *Timer) fire() {
	t.mu.Lock()
	t.pending = nil
	t.mu.Unlock()
	slog.Info("rest over")
}

// Stop cancels a pending notification. Registered as a shutdown job so
// a timer started right before exit doesn't outlive cleanup.
func (t *Timer) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	return nil
}
