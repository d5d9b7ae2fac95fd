package service

import (
	"context"
	"errors"
	"log"

	"github.com/limbo/ironlog/internal/catalog"
	"github.com/limbo/ironlog/internal/syncengine"
)

const (
	minRestSeconds = 10
	maxRestSeconds = 999
)

// RestService keeps per-exercise rest overrides and feeds the rest-timer
// collaborator. Overrides are clamped, never rejected.
type RestService struct {
	store  syncengine.LocalStore
	engine SyncNotifier
	timer  RestTimer
}

// NewRestService accepts a nil timer: the countdown is an optional
// collaborator and the core never depends on it.
func NewRestService(store syncengine.LocalStore, engine SyncNotifier, timer RestTimer) *RestService {
	if store == nil {
		log.Fatal("provided nil ledger store")
	}
	if engine == nil {
		log.Fatal("provided nil sync engine")
	}
	return &RestService{
		store:  store,
		engine: engine,
		timer:  timer,
	}
}

func (rs *RestService) SetOverride(ctx context.Context, exerciseID string, seconds int) (int, error) {
	if _, err := catalog.ByID(exerciseID); err != nil {
		return 0, err
	}
	if seconds < minRestSeconds {
		seconds = minRestSeconds
	}
	if seconds > maxRestSeconds {
		seconds = maxRestSeconds
	}
	overrides, err := rs.store.RestOverrides(ctx)
	if err != nil {
		return 0, errors.New("ledger store error: " + err.Error())
	}
	overrides[exerciseID] = seconds
	if err := rs.store.SaveRestOverrides(ctx, overrides); err != nil {
		return 0, errors.New("ledger store error: " + err.Error())
	}
	rs.engine.NotifyOverridesChanged()
	return seconds, nil
}

func (rs *RestService) Duration(ctx context.Context, exerciseID string) (int, error) {
	ex, err := catalog.ByID(exerciseID)
	if err != nil {
		return 0, err
	}
	overrides, err := rs.store.RestOverrides(ctx)
	if err != nil {
		return 0, errors.New("ledger store error: " + err.Error())
	}
	if seconds, ok := overrides[exerciseID]; ok {
		return seconds, nil
	}
	return ex.RestSeconds, nil
}

func (rs *RestService) StartRest(ctx context.Context, exerciseID string, notify bool) (int, error) {
	seconds, err := rs.Duration(ctx, exerciseID)
	if err != nil {
		return 0, err
	}
	if rs.timer != nil {
		rs.timer.Start(seconds, notify)
	}
	return seconds, nil
}
