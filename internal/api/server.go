package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/limbo/ironlog/internal/service"
)

type Server struct {
	mx            *chi.Mux
	ledgerService service.LedgerServiceI
	restService   service.RestServiceI
}

type ServicesList struct {
	LedgerService service.LedgerServiceI
	RestService   service.RestServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:            chi.NewMux(),
		ledgerService: servicesOptions.LedgerService,
		restService:   servicesOptions.RestService,
	}
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/exercises", s.ListExercises)
		r.Post("/logs", s.SaveLog)
		r.Post("/logs/stage", s.StageLog)
		r.Get("/logs/{exerciseID}/latest", s.GetLatestLog)
		r.Get("/logs/{exerciseID}/comparison", s.GetComparison)
		r.Get("/logs/{exerciseID}/suggestion", s.GetSuggestion)
		r.Post("/prescriptions/parse", s.ParsePrescription)
		r.Post("/sessions", s.StartSession)
		r.Post("/sessions/{id}/sets", s.LogSessionSet)
		r.Get("/rest/{exerciseID}", s.GetRestDuration)
		r.Put("/rest/{exerciseID}", s.SetRestOverride)
		r.Post("/rest/{exerciseID}/start", s.StartRestTimer)
		r.Get("/sync/status", s.GetSyncStatus)
	})
	return s
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}
