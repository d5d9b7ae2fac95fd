package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/limbo/ironlog/internal/advisor"
	"github.com/limbo/ironlog/internal/catalog"
	errorvalues "github.com/limbo/ironlog/internal/error_values"
	"github.com/limbo/ironlog/internal/service"
	"github.com/limbo/ironlog/pkg/httputil"
)

type SaveLogRequest struct {
	Date       string             `json:"date"`
	ExerciseID string             `json:"exercise_id"`
	Sets       []service.SetInput `json:"sets"`
}

type StartSessionRequest struct {
	Date     string `json:"date"`
	Template string `json:"template"`
}

type SessionSetRequest struct {
	ExerciseID string  `json:"exercise_id"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	RIR        int     `json:"rir"`
	Warmup     bool    `json:"warmup"`
}

type ParsePrescriptionRequest struct {
	Text string `json:"text"`
}

type SetRestOverrideRequest struct {
	Seconds int `json:"seconds"`
}

type StartRestRequest struct {
	Notify bool `json:"notify"`
}

func (s *Server) ListExercises(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	group := r.URL.Query().Get("day_group")
	if group != "" {
		httputil.WriteJSONResponse(w, http.StatusOK, catalog.ByDayGroup(group))
	} else {
		httputil.WriteJSONResponse(w, http.StatusOK, catalog.All())
	}
	logger.Info("exercise catalog provided")
}

func (s *Server) SaveLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req SaveLogRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("save log error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, GetRequestIDFromCtx(r.Context()), "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	logEntry, err := s.ledgerService.SaveLog(ctx, &service.SaveLogRequest{
		Date:       req.Date,
		ExerciseID: req.ExerciseID,
		Sets:       req.Sets,
	})
	if err != nil {
		writeSaveError(w, r, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, logEntry)
	logger.Info("log saved")
}

func (s *Server) StageLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req SaveLogRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("stage log error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, GetRequestIDFromCtx(r.Context()), "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.ledgerService.StageLog(ctx, &service.SaveLogRequest{
		Date:       req.Date,
		ExerciseID: req.ExerciseID,
		Sets:       req.Sets,
	})
	if err != nil {
		writeSaveError(w, r, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusAccepted, httputil.Ack{Status: "staged"})
	logger.Info("log staged")
}

func (s *Server) GetLatestLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	reqID := GetRequestIDFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	before := r.URL.Query().Get("before")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	logEntry, err := s.ledgerService.Latest(ctx, exerciseID, before)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("get latest log error: unknown exercise")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
		case errors.Is(err, errorvalues.ErrLogNotFound):
			logger.Error("get latest log error: nothing recorded")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "no log recorded for this exercise", nil)
		default:
			logger.Error("get latest log error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while reading history", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, logEntry)
	logger.Info("latest log provided")
}

func (s *Server) GetComparison(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	reqID := GetRequestIDFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	cmp, err := s.ledgerService.Comparison(ctx, exerciseID, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("comparison error: unknown exercise")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
		case errors.Is(err, errorvalues.ErrBadDate):
			logger.Error("comparison error: bad date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, "date must be YYYY-MM-DD", nil)
		default:
			logger.Error("comparison error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while comparing weeks", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, cmp)
	logger.Info("week comparison provided")
}

func (s *Server) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	reqID := GetRequestIDFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	suggestion, err := s.ledgerService.Suggest(ctx, exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("suggestion error: unknown exercise")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
		default:
			logger.Error("suggestion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while building suggestion", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, suggestion)
	logger.Info("suggestion provided")
}

func (s *Server) ParsePrescription(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req ParsePrescriptionRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("parse prescription error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, GetRequestIDFromCtx(r.Context()), "invalid request body", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, advisor.ParsePrescription(req.Text))
	logger.Info("prescription parsed")
}

func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	reqID := GetRequestIDFromCtx(r.Context())
	var req StartSessionRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("start session error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	session, err := s.ledgerService.StartSession(ctx, req.Date, req.Template)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBadDate):
			logger.Error("start session error: bad date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, "date must be YYYY-MM-DD", nil)
		default:
			logger.Error("start session error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while starting session", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, session)
	logger.Info("session started")
}

func (s *Server) LogSessionSet(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	reqID := GetRequestIDFromCtx(r.Context())
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("log session set error: invalid session id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, "invalid session id", nil)
		return
	}
	var req SessionSetRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log session set error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.ledgerService.LogSessionSet(ctx, &service.SessionSetRequest{
		SessionID:  sessionID,
		ExerciseID: req.ExerciseID,
		Reps:       req.Reps,
		Weight:     req.Weight,
		RIR:        req.RIR,
		Warmup:     req.Warmup,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSessionNotFound):
			logger.Error("log session set error: unknown session")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "session doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("log session set error: unknown exercise")
			httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
		case errors.Is(err, errorvalues.ErrInvalidReps), errors.Is(err, errorvalues.ErrNegativeLoad):
			logger.Error("log session set error: rejected set")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, err.Error(), nil)
		default:
			logger.Error("log session set error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while logging set", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, httputil.Ack{Status: "logged"})
	logger.Info("session set logged")
}

func (s *Server) GetRestDuration(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	seconds, err := s.restService.Duration(ctx, exerciseID)
	if err != nil {
		writeRestError(w, r, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SecondsResponse{Seconds: seconds})
	logger.Info("rest duration provided")
}

func (s *Server) SetRestOverride(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	var req SetRestOverrideRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		// Fall back to a seconds query param for simple clients
		req.Seconds, err = strconv.Atoi(r.URL.Query().Get("seconds"))
		if err != nil {
			logger.Error("set rest override error: invalid body")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, GetRequestIDFromCtx(r.Context()), "invalid request body", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	seconds, err := s.restService.SetOverride(ctx, exerciseID, req.Seconds)
	if err != nil {
		writeRestError(w, r, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SecondsResponse{Seconds: seconds})
	logger.Info("rest override saved")
}

func (s *Server) StartRestTimer(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	exerciseID := r.PathValue("exerciseID")
	var req StartRestRequest
	defer r.Body.Close()
	_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	seconds, err := s.restService.StartRest(ctx, exerciseID, req.Notify)
	if err != nil {
		writeRestError(w, r, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SecondsResponse{Seconds: seconds})
	logger.Info("rest timer started")
}

func (s *Server) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	httputil.WriteJSONResponse(w, http.StatusOK, s.ledgerService.SyncStatus())
	logger.Info("sync status provided")
}

func writeSaveError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	reqID := GetRequestIDFromCtx(r.Context())
	switch {
	case errors.Is(err, errorvalues.ErrNoSets),
		errors.Is(err, errorvalues.ErrInvalidReps),
		errors.Is(err, errorvalues.ErrNegativeLoad),
		errors.Is(err, errorvalues.ErrBadDate):
		logger.Error("save log error: rejected", slog.String("reason", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, reqID, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrExerciseNotFound):
		logger.Error("save log error: unknown exercise")
		httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
	default:
		logger.Error("save log error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while saving log", nil)
	}
}

func writeRestError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	reqID := GetRequestIDFromCtx(r.Context())
	switch {
	case errors.Is(err, errorvalues.ErrExerciseNotFound):
		logger.Error("rest error: unknown exercise")
		httputil.WriteErrorResponse(w, http.StatusNotFound, reqID, "unknown exercise", nil)
	default:
		logger.Error("rest error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, reqID, "internal error while handling rest duration", nil)
	}
}
