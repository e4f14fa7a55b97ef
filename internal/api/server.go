// Package api provides the operational HTTP server of the sync pipeline.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvnpm/central-sync-server/internal/status"
	"github.com/mvnpm/central-sync-server/internal/sync/scheduler"
	"github.com/mvnpm/central-sync-server/internal/versions"
)

// PipelineReader exposes the read-only view of the queue state the API serves
type PipelineReader interface {
	Snapshot() scheduler.PipelineSnapshot
}

// ItemLister exposes the ledger lookup the items endpoint serves
type ItemLister interface {
	ListByStage(ctx context.Context, stage status.Stage) ([]*status.SyncItem, error)
}

// ServerOption configures the operational API server
type ServerOption func(*serverConfig)

type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// NewServer creates and configures the HTTP router over the pipeline
func NewServer(pipeline PipelineReader, items ItemLister, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler)
	r.Get("/v0/pipeline", pipelineHandler(pipeline))
	r.Get("/v0/items/{stage}", itemsHandler(items))

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func versionHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, versions.GetVersionInfo())
}

func pipelineHandler(pipeline PipelineReader) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSONResponse(w, pipeline.Snapshot())
	}
}

// itemResponse is the wire form of one ledger entry
type itemResponse struct {
	GroupID       string    `json:"groupId"`
	ArtifactID    string    `json:"artifactId"`
	Version       string    `json:"version"`
	Stage         string    `json:"stage"`
	StagingRepoID string    `json:"stagingRepoId,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func itemsHandler(items ItemLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stage := status.Stage(strings.ToUpper(chi.URLParam(r, "stage")))
		if !stage.Valid() {
			http.Error(w, "unknown stage", http.StatusBadRequest)
			return
		}

		found, err := items.ListByStage(r.Context(), stage)
		if err != nil {
			slog.Error("Failed to list sync items", "stage", stage, "error", err)
			http.Error(w, "failed to list sync items", http.StatusInternalServerError)
			return
		}

		resp := make([]itemResponse, 0, len(found))
		for _, item := range found {
			resp = append(resp, itemResponse{
				GroupID:       item.GroupID,
				ArtifactID:    item.ArtifactID,
				Version:       item.Version,
				Stage:         string(item.Stage),
				StagingRepoID: item.StagingRepoID,
				UpdatedAt:     item.UpdatedAt,
			})
		}
		writeJSONResponse(w, resp)
	}
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}
