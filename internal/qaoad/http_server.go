package qaoad

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

type HTTPServer struct {
	router   *mux.Router
	store    *RunStore
	Executor *RunExecutor
	origins  []string
}

// NewHTTPServer wires the REST routes. allowedOrigins configures CORS; an
// empty list allows any origin.
func NewHTTPServer(store *RunStore, executor *RunExecutor, allowedOrigins ...string) *HTTPServer {
	s := &HTTPServer{
		router:   mux.NewRouter(),
		store:    store,
		Executor: executor,
		origins:  allowedOrigins,
	}

	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	runs := s.router.PathPrefix("/v1/runs").Subrouter()
	runs.HandleFunc("", s.handleCreateRun).Methods(http.MethodPost)
	runs.HandleFunc("", s.handleListRuns).Methods(http.MethodGet)
	runs.HandleFunc("/{id}", s.handleGetRun).Methods(http.MethodGet)
	runs.HandleFunc("/{id}/start", s.handleStartRun).Methods(http.MethodPost)
	runs.HandleFunc("/{id}/stop", s.handleStopRun).Methods(http.MethodPost)
	runs.HandleFunc("/{id}/result", s.handleGetResult).Methods(http.MethodGet)
	runs.HandleFunc("/{id}/report", s.handleGetReport).Methods(http.MethodGet)

	s.router.Use(loggingMiddleware)
	return s
}

// Handler returns the router wrapped in the CORS middleware.
func (s *HTTPServer) Handler() http.Handler {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.router)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		logger.Debug("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCreateRun handles POST /v1/runs. With "start": true the run is
// started right away.
func (s *HTTPServer) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RunID string    `json:"run_id,omitempty"`
		Input *RunInput `json:"input"`
		Start bool      `json:"start,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Input == nil {
		s.writeError(w, http.StatusBadRequest, "input is required")
		return
	}
	if _, _, err := resolveInput(req.Input); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Create(req.RunID, req.Input)
	if err != nil {
		if errors.Is(err, ErrRunExists) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info("run created (HTTP)", "run_id", rec.Run.ID)

	if req.Start {
		rec, err = s.Executor.Start(rec.Run.ID)
		if err != nil {
			s.writeRunError(w, err)
			return
		}
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"run": rec.Run})
}

// handleListRuns handles GET /v1/runs?limit=N
func (s *HTTPServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, 1000)
	}
	recs := s.store.List(limit)
	runs := make([]Run, 0, len(recs))
	for _, rec := range recs {
		runs = append(runs, rec.Run)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *HTTPServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"run": rec.Run, "input": rec.Input})
}

func (s *HTTPServer) handleStartRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Executor.Start(mux.Vars(r)["id"])
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"run": rec.Run})
}

func (s *HTTPServer) handleStopRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Executor.Stop(mux.Vars(r)["id"])
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"run": rec.Run})
}

func (s *HTTPServer) handleGetResult(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if rec.Result == nil {
		s.writeError(w, http.StatusPreconditionFailed, "result not available (status "+string(rec.Run.Status)+")")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"run": rec.Run, "result": rec.Result})
}

func (s *HTTPServer) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.Get(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if rec.Result == nil {
		s.writeError(w, http.StatusPreconditionFailed, "report not available (status "+string(rec.Run.Status)+")")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rec.Result.Report)); err != nil {
		logger.Error("failed to write report", "run_id", rec.Run.ID, "error", err)
	}
}

func (s *HTTPServer) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRunNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRunTerminal):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrRunIDMissing):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"error": message})
}
