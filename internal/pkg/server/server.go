package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type database interface {
	GetPlants(ctx context.Context) ([]model.Plant, error)
	GetLatestMetrics(ctx context.Context, plantID string) (model.Metrics, error)
}

type server struct {
	db     database
	logger *zap.Logger
}

func New(db database) *server {
	return &server{db: db, logger: zap.L()}
}

// Router wires the read-only status API. apiPasswordHash guards the /api
// routes with basic auth when non-empty.
func (s *server) Router(apiPasswordHash string) chi.Router {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware)

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		if apiPasswordHash != "" {
			r.Use(BasicAuthMiddleware(apiPasswordHash))
		}
		r.Get("/plants", s.getPlants)
		r.Get("/plants/{plantID}/latest", s.getLatestMetrics)
	})

	return r
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *server) getPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := s.db.GetPlants(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if plants == nil {
		plants = []model.Plant{}
	}
	writeJSON(w, plants)
}

func (s *server) getLatestMetrics(w http.ResponseWriter, r *http.Request) {
	plantID := chi.URLParam(r, "plantID")
	metrics, err := s.db.GetLatestMetrics(r.Context(), plantID)
	if err != nil {
		handleError(w, err)
		return
	}
	if metrics == nil {
		metrics = model.Metrics{}
	}
	writeJSON(w, metrics)
}

func handleError(w http.ResponseWriter, err error) {
	zap.L().Error("request failed", zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func writeJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
