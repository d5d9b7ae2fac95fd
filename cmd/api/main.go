// @title Training ledger API
// @description Local-first strength-training ledger "Ironlog" with optional remote sync
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"time"

	"github.com/limbo/ironlog/internal/api"
	"github.com/limbo/ironlog/internal/ledger"
	"github.com/limbo/ironlog/internal/remote"
	"github.com/limbo/ironlog/internal/resttimer"
	"github.com/limbo/ironlog/internal/service"
	"github.com/limbo/ironlog/internal/syncengine"
	"github.com/limbo/ironlog/pkg/cleanup"
	"github.com/limbo/ironlog/pkg/config"
)

const debounceQuiet = 400 * time.Millisecond

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	store, err := ledger.Open(cfg.GetStringOr("LEDGER_DB_PATH", "./data/ironlog.db"))
	if err != nil {
		log.Fatal("opening local ledger error: " + err.Error())
	}

	// The remote store is optional: without POSTGRES_DB_ADDRESS the
	// device runs purely local.
	dbCfg := remote.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	var logsRepo remote.LogsRepositoryI
	var overridesRepo remote.OverridesRepositoryI
	if dbCfg.Configured() {
		logsRepo = remote.NewLogsRepo(&dbCfg)
		overridesRepo = remote.NewOverridesRepo(&dbCfg)
	}

	engine := syncengine.New(store, logsRepo, overridesRepo, debounceQuiet)
	cleanup.Register(&cleanup.Job{
		Name: "closing sync engine",
		F:    engine.Close,
	})
	// Attempted once per process, before local edits can queue pushes.
	go engine.PullOnStart(context.Background())

	timer := resttimer.New()
	cleanup.Register(&cleanup.Job{
		Name: "stopping rest timer",
		F:    timer.Stop,
	})

	serv := api.New(&api.ServicesList{
		LedgerService: service.NewLedgerService(store, engine, debounceQuiet),
		RestService:   service.NewRestService(store, engine, timer),
	})
	err = serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
