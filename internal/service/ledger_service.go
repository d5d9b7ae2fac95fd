package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/limbo/ironlog/internal/advisor"
	"github.com/limbo/ironlog/internal/catalog"
	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/internal/history"
	"github.com/limbo/ironlog/internal/syncengine"
	"github.com/limbo/ironlog/pkg/entity"
)

// LedgerService funnels every mutation through the ledger store first
// (synchronous, local) and only then pokes the sync engine to mirror.
type LedgerService struct {
	store  syncengine.LocalStore
	engine SyncNotifier

	// Commits are read-modify-write over the whole snapshot, so they
	// are serialized.
	commitMu sync.Mutex

	stagingQuiet time.Duration
	stagingMu    sync.Mutex
	staging      map[string]*syncengine.Debouncer
}

func NewLedgerService(store syncengine.LocalStore, engine SyncNotifier, quiet time.Duration) *LedgerService {
	if store == nil {
		log.Fatal("provided nil ledger store")
	}
	if engine == nil {
		log.Fatal("provided nil sync engine")
	}
	return &LedgerService{
		store:        store,
		engine:       engine,
		stagingQuiet: quiet,
		staging:      map[string]*syncengine.Debouncer{},
	}
}

func (ls *LedgerService) SaveLog(ctx context.Context, req *SaveLogRequest) (*entity.ExerciseLog, error) {
	if err := validateSaveLog(req); err != nil {
		return nil, err
	}
	ls.commitMu.Lock()
	defer ls.commitMu.Unlock()
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	logEntry := entity.ExerciseLog{
		Date:       req.Date,
		ExerciseID: req.ExerciseID,
		Sets:       make([]entity.SetRecord, 0, len(req.Sets)),
		CreatedAt:  time.Now(),
	}
	for _, set := range req.Sets {
		logEntry.Sets = append(logEntry.Sets, entity.SetRecord{
			Reps:      set.Reps,
			Weight:    set.Weight,
			RIR:       set.RIR,
			Warmup:    set.Warmup,
			CreatedAt: logEntry.CreatedAt,
		})
	}
	// At most one log per (date, exercise): a new save replaces the old
	// one in full.
	kept := snap.Logs[:0]
	for _, l := range snap.Logs {
		if l.Date == logEntry.Date && l.ExerciseID == logEntry.ExerciseID {
			continue
		}
		kept = append(kept, l)
	}
	snap.Logs = append(kept, logEntry)
	if err := ls.store.Save(ctx, snap); err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	ls.engine.NotifyLedgerChanged()
	return &logEntry, nil
}

// StageLog validates immediately but commits only after the quiet
// interval passes with no newer edit for the debouncer to swallow.
// Coalescing is scoped to one (date, exercise) working set: staging a
// different exercise never cancels a pending commit.
func (ls *LedgerService) StageLog(ctx context.Context, req *SaveLogRequest) error {
	if err := validateSaveLog(req); err != nil {
		return err
	}
	staged := *req
	ls.stagingFor(req.Date, req.ExerciseID).Trigger(func() {
		if _, err := ls.SaveLog(context.Background(), &staged); err != nil {
			slog.Error("committing staged log failed", slog.String("error", err.Error()))
		}
	})
	return nil
}

func (ls *LedgerService) stagingFor(date, exerciseID string) *syncengine.Debouncer {
	key := date + "/" + exerciseID
	ls.stagingMu.Lock()
	defer ls.stagingMu.Unlock()
	deb, ok := ls.staging[key]
	if !ok {
		deb = syncengine.NewDebouncer(ls.stagingQuiet)
		ls.staging[key] = deb
	}
	return deb
}

func (ls *LedgerService) Latest(ctx context.Context, exerciseID, before string) (*entity.ExerciseLog, error) {
	if _, err := catalog.ByID(exerciseID); err != nil {
		return nil, err
	}
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	logEntry, ok := history.MostRecentLog(exerciseID, snap.Logs, before)
	if !ok {
		return nil, errorvalues.ErrLogNotFound
	}
	return logEntry, nil
}

func (ls *LedgerService) Comparison(ctx context.Context, exerciseID, date string) (*WeekComparison, error) {
	ex, err := catalog.ByID(exerciseID)
	if err != nil {
		return nil, err
	}
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	prior, _, err := history.PriorWeekSnapshot(exerciseID, snap.Logs, date)
	if err != nil {
		return nil, err
	}
	current, _ := history.MostRecentLog(exerciseID, snap.Logs, date)
	cmp := &WeekComparison{
		Current:   current,
		PriorWeek: prior,
	}
	if current != nil {
		cmp.CurrentBest = bestEstimatedMax(ex, snap.Bodyweight, current.Sets)
	}
	if prior != nil {
		cmp.PriorWeekBest = bestEstimatedMax(ex, snap.Bodyweight, prior.Sets)
	}
	return cmp, nil
}

func (ls *LedgerService) Suggest(ctx context.Context, exerciseID string) (*advisor.Suggestion, error) {
	ex, err := catalog.ByID(exerciseID)
	if err != nil {
		return nil, err
	}
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	var working []entity.SetRecord
	if logEntry, ok := history.MostRecentLog(exerciseID, snap.Logs, ""); ok {
		// Sets are stored in performed order, so they are already
		// oldest-first. Warm-ups don't inform progression.
		for _, set := range logEntry.Sets {
			if set.Warmup {
				continue
			}
			working = append(working, set)
		}
	}
	suggestion := advisor.SuggestNext(ex, working)
	return &suggestion, nil
}

func (ls *LedgerService) StartSession(ctx context.Context, date, template string) (*entity.Session, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, errorvalues.ErrBadDate
	}
	ls.commitMu.Lock()
	defer ls.commitMu.Unlock()
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	session := entity.Session{
		ID:       uuid.New(),
		Date:     date,
		Template: template,
	}
	snap.Sessions = append(snap.Sessions, session)
	if err := ls.store.Save(ctx, snap); err != nil {
		return nil, errors.New("ledger store error: " + err.Error())
	}
	ls.engine.NotifyLedgerChanged()
	return &session, nil
}

func (ls *LedgerService) LogSessionSet(ctx context.Context, req *SessionSetRequest) error {
	ex, err := catalog.ByID(req.ExerciseID)
	if err != nil {
		return err
	}
	if req.Reps <= 0 {
		return errorvalues.ErrInvalidReps
	}
	// Negative weight is assistance, valid for bodyweight movements only.
	if req.Weight < 0 && ex.Class != entity.MovementBodyweight {
		return errorvalues.ErrNegativeLoad
	}
	if req.RIR < 0 || req.RIR > 4 {
		return errors.New("rir out of range")
	}
	ls.commitMu.Lock()
	defer ls.commitMu.Unlock()
	snap, err := ls.store.Load(ctx)
	if err != nil {
		return errors.New("ledger store error: " + err.Error())
	}
	found := false
	for _, s := range snap.Sessions {
		if s.ID == req.SessionID {
			found = true
			break
		}
	}
	if !found {
		return errorvalues.ErrSessionNotFound
	}
	snap.SessionSets = append(snap.SessionSets, entity.SessionSet{
		SessionID:  req.SessionID,
		ExerciseID: req.ExerciseID,
		Reps:       req.Reps,
		Weight:     req.Weight,
		RIR:        req.RIR,
		Warmup:     req.Warmup,
		CreatedAt:  time.Now(),
	})
	if err := ls.store.Save(ctx, snap); err != nil {
		return errors.New("ledger store error: " + err.Error())
	}
	ls.engine.NotifyLedgerChanged()
	return nil
}

func (ls *LedgerService) SyncStatus() syncengine.Status {
	return ls.engine.Status()
}

func bestEstimatedMax(ex *entity.ExerciseDefinition, bodyweight float64, sets []entity.SetRecord) float64 {
	best := 0.0
	for _, set := range sets {
		if set.Warmup || set.Reps == 0 {
			continue
		}
		load := advisor.EffectiveLoad(ex, bodyweight, set.Weight)
		if e1rm := advisor.EstimatedMax(load, set.Reps); e1rm > best {
			best = e1rm
		}
	}
	return best
}

func validateSaveLog(req *SaveLogRequest) error {
	if req == nil || len(req.Sets) == 0 {
		return errorvalues.ErrNoSets
	}
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			switch fe.Field() {
			case "Date":
				return errorvalues.ErrBadDate
			case "ExerciseID":
				return errorvalues.ErrExerciseNotFound
			case "Reps":
				return errorvalues.ErrInvalidReps
			case "Weight":
				return errorvalues.ErrNegativeLoad
			}
		}
	}
	return err
}
