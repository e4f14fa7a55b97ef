package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvnpm/central-sync-server/internal/coordinates"
	"github.com/mvnpm/central-sync-server/internal/status"
	"github.com/mvnpm/central-sync-server/internal/sync/scheduler"
	"github.com/mvnpm/central-sync-server/internal/sync/state"
)

type stubPipeline struct {
	snapshot scheduler.PipelineSnapshot
}

func (s *stubPipeline) Snapshot() scheduler.PipelineSnapshot {
	return s.snapshot
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := NewServer(&stubPipeline{}, state.NewMemoryItemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()

	router := NewServer(&stubPipeline{}, state.NewMemoryItemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["go_version"])
	assert.NotEmpty(t, body["platform"])
}

func TestPipelineEndpoint(t *testing.T) {
	t.Parallel()

	coord := coordinates.Coordinate{GroupID: "org.mvnpm", ArtifactID: "lit", Version: "3.1.0"}
	pipeline := &stubPipeline{
		snapshot: scheduler.PipelineSnapshot{
			UploadInProgress: &coord,
			UploadQueue:      []coordinates.Coordinate{{GroupID: "org.mvnpm", ArtifactID: "other", Version: "1.0.0"}},
			StatusQueue:      []string{"orgmvnpm-1"},
			ReleaseQueue:     []string{},
			ScanRunning:      true,
		},
	}

	router := NewServer(pipeline, state.NewMemoryItemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/pipeline", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got scheduler.PipelineSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.UploadInProgress)
	assert.Equal(t, coord, *got.UploadInProgress)
	assert.Len(t, got.UploadQueue, 1)
	assert.Equal(t, []string{"orgmvnpm-1"}, got.StatusQueue)
	assert.True(t, got.ScanRunning)
}

func TestItemsEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := state.NewMemoryItemStore()
	item, err := store.FindOrCreate(ctx, "org.mvnpm", "lit", "3.1.0", status.StagePackaging)
	require.NoError(t, err)
	_, err = store.ChangeStage(ctx, item, status.StageError)
	require.NoError(t, err)
	_, err = store.FindOrCreate(ctx, "org.mvnpm", "left-pad", "1.3.0", status.StageNone)
	require.NoError(t, err)

	router := NewServer(&stubPipeline{}, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/items/error", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "lit", got[0]["artifactId"])
	assert.Equal(t, "ERROR", got[0]["stage"])
}

func TestItemsEndpointRejectsUnknownStage(t *testing.T) {
	t.Parallel()

	router := NewServer(&stubPipeline{}, state.NewMemoryItemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/items/bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	router := NewServer(&stubPipeline{}, state.NewMemoryItemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMiddlewaresApplied(t *testing.T) {
	t.Parallel()

	var seen bool
	marker := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = true
			next.ServeHTTP(w, r)
		})
	}

	router := NewServer(&stubPipeline{}, state.NewMemoryItemStore(), WithMiddlewares(marker))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, seen)
}
