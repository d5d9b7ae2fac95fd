package syncengine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/limbo/ironlog/internal/catalog"
	"github.com/limbo/ironlog/internal/remote"
	"github.com/limbo/ironlog/pkg/entity"
)

type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateSynced  State = "synced"
	StateError   State = "error"
)

// Status is the signal visible to callers. It never blocks local reads
// or writes.
type Status struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

// LocalStore is the slice of the ledger store the engine needs: read the
// current snapshot to push, replace it wholesale on pull.
type LocalStore interface {
	Load(ctx context.Context) (*entity.LedgerSnapshot, error)
	Save(ctx context.Context, snap *entity.LedgerSnapshot) error
	RestOverrides(ctx context.Context) (map[string]int, error)
	SaveRestOverrides(ctx context.Context, overrides map[string]int) error
	ClientID(ctx context.Context) (string, error)
}

// Engine mirrors the local ledger against the remote store. The local
// side is always authoritative for the running session: remote failures
// only ever touch the status signal.
type Engine struct {
	store     LocalStore
	logs      remote.LogsRepositoryI
	overrides remote.OverridesRepositoryI

	mu     sync.Mutex
	status Status

	// generation invalidates in-flight work: a pull only applies its
	// result if no local edit (or Close) bumped the counter since the
	// pull started.
	generation atomic.Uint64
	pullOnce   sync.Once

	pushDebounce     *Debouncer
	overrideDebounce *Debouncer
}

// New wires the engine. Nil repositories mean no remote store is
// configured and every remote step becomes a no-op.
func New(store LocalStore, logs remote.LogsRepositoryI, overrides remote.OverridesRepositoryI, quiet time.Duration) *Engine {
	return &Engine{
		store:            store,
		logs:             logs,
		overrides:        overrides,
		status:           Status{State: StateIdle},
		pushDebounce:     NewDebouncer(quiet),
		overrideDebounce: NewDebouncer(quiet),
	}
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setStatus(state State, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = Status{State: state, Message: message}
}

// Configured reports whether a remote store is wired at all.
func (e *Engine) Configured() bool {
	return e.logs != nil && e.overrides != nil
}

// reachable is consulted before every remote attempt.
func (e *Engine) reachable(ctx context.Context) bool {
	if !e.Configured() {
		return false
	}
	return e.logs.Ping(ctx) == nil
}

// PullOnStart runs the startup pull exactly once per process lifetime.
// Remote rows fully replace the local snapshot when any come back; zero
// rows leave a populated local device alone. Rest overrides follow the
// same rule independently.
func (e *Engine) PullOnStart(ctx context.Context) {
	e.pullOnce.Do(func() {
		e.pull(ctx)
	})
}

func (e *Engine) pull(ctx context.Context) {
	if !e.Configured() {
		return
	}
	gen := e.generation.Load()
	e.setStatus(StateSyncing, "")
	if !e.reachable(ctx) {
		e.setStatus(StateError, "remote store is not reachable")
		return
	}
	clientID, err := e.store.ClientID(ctx)
	if err != nil {
		e.setStatus(StateError, "reading client identity: "+err.Error())
		return
	}
	rows, err := e.logs.GetByClientID(ctx, clientID)
	if err != nil {
		e.setStatus(StateError, "pulling ledger rows: "+err.Error())
		return
	}
	overrideRows, err := e.overrides.GetByClientID(ctx, clientID)
	if err != nil {
		e.setStatus(StateError, "pulling rest overrides: "+err.Error())
		return
	}
	if ctx.Err() != nil || e.generation.Load() != gen {
		// Owning context went away or a local edit landed mid-pull;
		// applying now would clobber fresher data.
		slog.Info("discarding stale pull result")
		e.setStatus(StateSynced, "pull discarded, local ledger is newer")
		return
	}
	if len(rows) > 0 {
		snap, err := e.store.Load(ctx)
		if err != nil {
			e.setStatus(StateError, "loading local snapshot: "+err.Error())
			return
		}
		snap.Logs = make([]entity.ExerciseLog, 0, len(rows))
		for _, row := range rows {
			snap.Logs = append(snap.Logs, rowToLog(row))
		}
		// Re-checked right before the write. An edit landing between
		// this check and Save can still be overwritten; that residual
		// window is accepted, remote wins on startup.
		if e.generation.Load() != gen {
			slog.Info("discarding stale pull result")
			e.setStatus(StateSynced, "pull discarded, local ledger is newer")
			return
		}
		if err := e.store.Save(ctx, snap); err != nil {
			e.setStatus(StateError, "replacing local snapshot: "+err.Error())
			return
		}
	}
	if len(overrideRows) > 0 {
		overrides := make(map[string]int, len(overrideRows))
		for _, row := range overrideRows {
			overrides[row.ExerciseID] = row.Seconds
		}
		if err := e.store.SaveRestOverrides(ctx, overrides); err != nil {
			e.setStatus(StateError, "replacing local overrides: "+err.Error())
			return
		}
	}
	e.setStatus(StateSynced, "")
}

// NotifyLedgerChanged is called after every synchronous local commit. It
// bumps the generation (so an in-flight pull can't overwrite the fresher
// edit) and schedules a debounced full-snapshot push.
func (e *Engine) NotifyLedgerChanged() {
	e.generation.Add(1)
	if !e.Configured() {
		return
	}
	e.pushDebounce.Trigger(func() {
		e.PushLogs(context.Background())
	})
}

// NotifyOverridesChanged schedules a debounced override push.
func (e *Engine) NotifyOverridesChanged() {
	e.generation.Add(1)
	if !e.Configured() {
		return
	}
	e.overrideDebounce.Trigger(func() {
		e.PushOverrides(context.Background())
	})
}

// PushLogs re-sends every current log row keyed by (clientID, date,
// exerciseID). Existing remote rows are overwritten, missing ones
// inserted. It is a full-snapshot upsert, not a diff.
func (e *Engine) PushLogs(ctx context.Context) {
	if !e.reachable(ctx) {
		e.setStatus(StateError, "remote store is not reachable")
		return
	}
	e.setStatus(StateSyncing, "")
	clientID, err := e.store.ClientID(ctx)
	if err != nil {
		e.setStatus(StateError, "reading client identity: "+err.Error())
		return
	}
	snap, err := e.store.Load(ctx)
	if err != nil {
		e.setStatus(StateError, "loading local snapshot: "+err.Error())
		return
	}
	for i := range snap.Logs {
		row := logToRow(clientID, &snap.Logs[i])
		if err := e.logs.Upsert(ctx, &row); err != nil {
			e.setStatus(StateError, "pushing ledger row: "+err.Error())
			return
		}
	}
	e.setStatus(StateSynced, "")
}

// PushOverrides replaces the client's remote override rows with a
// delete-then-insert pair. The two steps are not atomic: a failure after
// the delete leaves the remote override set empty until the next
// successful push. Local overrides stay intact either way.
func (e *Engine) PushOverrides(ctx context.Context) {
	if !e.reachable(ctx) {
		e.setStatus(StateError, "remote store is not reachable")
		return
	}
	e.setStatus(StateSyncing, "")
	clientID, err := e.store.ClientID(ctx)
	if err != nil {
		e.setStatus(StateError, "reading client identity: "+err.Error())
		return
	}
	overrides, err := e.store.RestOverrides(ctx)
	if err != nil {
		e.setStatus(StateError, "loading local overrides: "+err.Error())
		return
	}
	if err := e.overrides.DeleteByClientID(ctx, clientID); err != nil {
		e.setStatus(StateError, "clearing remote overrides: "+err.Error())
		return
	}
	for exerciseID, seconds := range overrides {
		err := e.overrides.Insert(ctx, &entity.RestOverrideRow{
			ClientID:   clientID,
			ExerciseID: exerciseID,
			Seconds:    seconds,
		})
		if err != nil {
			e.setStatus(StateError, "pushing rest override: "+err.Error())
			return
		}
	}
	e.setStatus(StateSynced, "")
}

// Close invalidates in-flight work and cancels pending pushes.
func (e *Engine) Close() error {
	e.generation.Add(1)
	e.pushDebounce.Stop()
	e.overrideDebounce.Stop()
	return nil
}

func logToRow(clientID string, log *entity.ExerciseLog) entity.TrainingLogRow {
	row := entity.TrainingLogRow{
		ClientID:   clientID,
		Date:       log.Date,
		ExerciseID: log.ExerciseID,
		Sets:       log.Sets,
		UpdatedAt:  log.CreatedAt,
	}
	if ex, err := catalog.ByID(log.ExerciseID); err == nil {
		row.DayLabel = ex.DayGroup
		row.ExerciseName = ex.Name
	}
	return row
}

func rowToLog(row entity.TrainingLogRow) entity.ExerciseLog {
	return entity.ExerciseLog{
		Date:       row.Date,
		ExerciseID: row.ExerciseID,
		Sets:       row.Sets,
		CreatedAt:  row.UpdatedAt,
	}
}
