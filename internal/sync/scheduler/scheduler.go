// Package scheduler drives the publication pipeline: timer-driven upload,
// status-poll, and release queues, plus a cron-scheduled catalog scan that
// feeds the upload queue. Queues are in-memory and rebuilt from the durable
// item store after a restart by the next scan.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvnpm/central-sync-server/internal/central"
	"github.com/mvnpm/central-sync-server/internal/coordinates"
	"github.com/mvnpm/central-sync-server/internal/status"
	"github.com/mvnpm/central-sync-server/internal/storage"
	pipeline "github.com/mvnpm/central-sync-server/internal/sync"
	"github.com/mvnpm/central-sync-server/internal/telemetry"
)

const (
	// defaultQueueInterval is the period of the three queue timers
	defaultQueueInterval = 10 * time.Second

	// defaultDiscoveryCron runs the catalog scan nightly
	defaultDiscoveryCron = "0 2 * * *"

	// maxReleaseAttempts bounds how often a release is retried before the
	// item is parked in ERROR
	maxReleaseAttempts = 3
)

// statusTask tracks an uploaded bundle awaiting validation by the target
type statusTask struct {
	Coordinate    coordinates.Coordinate
	StagingRepoID string
}

// releaseTask tracks a validated staging repository awaiting promotion
type releaseTask struct {
	Coordinate    coordinates.Coordinate
	StagingRepoID string
	Attempts      int
}

// PipelineSnapshot is a point-in-time view of the queues, served by the
// operational API
type PipelineSnapshot struct {
	UploadInProgress *coordinates.Coordinate  `json:"uploadInProgress,omitempty"`
	UploadQueue      []coordinates.Coordinate `json:"uploadQueue"`
	StatusQueue      []string                 `json:"statusQueue"`
	ReleaseQueue     []string                 `json:"releaseQueue"`
	ScanRunning      bool                     `json:"scanRunning"`
}

// Scheduler owns the pipeline queues and their timers
type Scheduler struct {
	orchestrator pipeline.Orchestrator
	central      central.Facade
	files        storage.FileStore
	metrics      *telemetry.PipelineMetrics

	queueInterval time.Duration
	discoveryCron string

	uploadQueue  *queue[coordinates.Coordinate]
	statusQueue  *queue[statusTask]
	releaseQueue *queue[releaseTask]

	// mu guards uploadInProgress so at most one upload runs at a time
	mu               stdsync.Mutex
	uploadInProgress *coordinates.Coordinate

	scanRunning atomic.Bool

	cron   *cron.Cron
	cancel context.CancelFunc
	wg     stdsync.WaitGroup
}

// Option configures the Scheduler
type Option func(*Scheduler)

// WithQueueInterval overrides the queue timer period
func WithQueueInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.queueInterval = d
		}
	}
}

// WithDiscoveryCron overrides the catalog scan schedule
func WithDiscoveryCron(spec string) Option {
	return func(s *Scheduler) {
		if spec != "" {
			s.discoveryCron = spec
		}
	}
}

// WithMetrics attaches pipeline metrics
func WithMetrics(m *telemetry.PipelineMetrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// New creates a Scheduler over the given collaborators. Start must be called
// before the queues are processed.
func New(
	orchestrator pipeline.Orchestrator,
	centralFacade central.Facade,
	files storage.FileStore,
	opts ...Option,
) *Scheduler {
	s := &Scheduler{
		orchestrator:  orchestrator,
		central:       centralFacade,
		files:         files,
		queueInterval: defaultQueueInterval,
		discoveryCron: defaultDiscoveryCron,
		uploadQueue:   newQueue[coordinates.Coordinate](),
		statusQueue:   newQueue[statusTask](),
		releaseQueue:  newQueue[releaseTask](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the queue timers and the discovery cron. It returns once
// everything is scheduled; processing happens on background goroutines until
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.discoveryCron, func() {
		s.CheckAll(ctx)
	}); err != nil {
		return fmt.Errorf("invalid discovery schedule %q: %w", s.discoveryCron, err)
	}
	s.cron.Start()

	s.wg.Add(3)
	go s.runTimer(ctx, "upload", s.processUploadQueue)
	go s.runTimer(ctx, "status", s.processStatusQueue)
	go s.runTimer(ctx, "release", s.processReleaseQueue)

	slog.Info("Pipeline scheduler started",
		"queue_interval", s.queueInterval.String(),
		"discovery_cron", s.discoveryCron)
	return nil
}

// Stop halts the timers and the cron and waits for in-flight queue passes to
// finish
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()
	slog.Info("Pipeline scheduler stopped")
}

func (s *Scheduler) runTimer(ctx context.Context, name string, process func(context.Context)) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.queueInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Queue timer stopping", "queue", name)
			return
		case <-ticker.C:
			process(ctx)
			s.recordDepths(ctx)
		}
	}
}

// AddToSyncQueue checks the coordinate's eligibility and enqueues it for
// upload unless it is already queued or being uploaded. Returns whether the
// coordinate was added.
func (s *Scheduler) AddToSyncQueue(ctx context.Context, groupID, artifactID, version string) (bool, error) {
	coord := coordinates.Coordinate{GroupID: groupID, ArtifactID: artifactID, Version: version}

	s.mu.Lock()
	inFlight := s.uploadInProgress != nil && *s.uploadInProgress == coord
	s.mu.Unlock()
	if inFlight || s.uploadQueue.Contains(coord) {
		return false, nil
	}

	ok, err := s.orchestrator.CanSync(ctx, groupID, artifactID, version)
	if err != nil {
		return false, err
	}
	if !ok {
		slog.Debug("Coordinate not eligible for sync", "coordinate", coord.String())
		return false, nil
	}

	added := s.uploadQueue.EnqueueIfAbsent(coord)
	if added {
		slog.Info("Queued for upload", "coordinate", coord.String())
	}
	return added, nil
}

// SyncLatest resolves the coordinate's latest version and queues it for
// upload when it is eligible
func (s *Scheduler) SyncLatest(ctx context.Context, groupID, artifactID string) error {
	version, err := s.orchestrator.LatestVersion(ctx, groupID, artifactID)
	if err != nil {
		return err
	}
	_, err = s.AddToSyncQueue(ctx, groupID, artifactID, version)
	return err
}

// CheckAll walks the local artifact catalog and queues every eligible
// coordinate. At most one scan runs at a time; overlapping invocations are
// dropped.
func (s *Scheduler) CheckAll(ctx context.Context) {
	if !s.scanRunning.CompareAndSwap(false, true) {
		slog.Warn("Catalog scan already running, skipping")
		return
	}
	defer s.scanRunning.Store(false)

	start := time.Now()
	roots, err := s.files.ArtifactRoots(ctx)
	if err != nil {
		slog.Error("Catalog scan failed", "error", err)
		return
	}

	var checked, failed int
	for _, root := range roots {
		if ctx.Err() != nil {
			return
		}
		groupID, artifactID, err := coordinates.FromArtifactRoot(root)
		if err != nil {
			slog.Debug("Skipping non-artifact path", "path", root, "error", err)
			continue
		}
		name, err := coordinates.FromMavenGA(groupID, artifactID)
		if err != nil {
			continue
		}
		if name.IsInternal() {
			slog.Warn("Skipping internal package", "package", name.NpmFullName)
			continue
		}
		checked++
		if err := s.SyncLatest(ctx, groupID, artifactID); err != nil {
			failed++
			slog.Warn("Catalog scan entry failed",
				"group_id", groupID,
				"artifact_id", artifactID,
				"error", err)
		}
	}

	slog.Info("Catalog scan finished",
		"checked", checked,
		"failed", failed,
		"queued", s.uploadQueue.Len(),
		"duration", time.Since(start).String())
}

// processUploadQueue takes one coordinate off the upload queue and syncs it.
// At most one upload is in flight at any time.
func (s *Scheduler) processUploadQueue(ctx context.Context) {
	s.mu.Lock()
	if s.uploadInProgress != nil {
		s.mu.Unlock()
		return
	}
	coord, ok := s.uploadQueue.Dequeue()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.uploadInProgress = &coord
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploadInProgress = nil
		s.mu.Unlock()
	}()

	item, eligible, err := s.orchestrator.SyncInfo(ctx, coord.GroupID, coord.ArtifactID, coord.Version)
	if err != nil {
		slog.Error("Failed to resolve sync state, requeueing",
			"coordinate", coord.String(),
			"error", err)
		s.uploadQueue.EnqueueIfAbsent(coord)
		return
	}
	if !eligible {
		slog.Debug("Coordinate no longer eligible for upload", "coordinate", coord.String())
		return
	}

	start := time.Now()
	stagingRepoID, err := s.orchestrator.Sync(ctx, item)
	s.metrics.RecordUpload(ctx, time.Since(start), err == nil)
	if err != nil {
		// Sync already parked the item in ERROR
		slog.Error("Upload failed", "coordinate", coord.String(), "error", err)
		return
	}

	slog.Info("Uploaded bundle",
		"coordinate", coord.String(),
		"staging_repo_id", stagingRepoID)
	s.statusQueue.Enqueue(statusTask{Coordinate: item.Coordinate(), StagingRepoID: stagingRepoID})
}

// processStatusQueue polls one staging repository. Repositories still being
// validated go back to the tail of the queue.
func (s *Scheduler) processStatusQueue(ctx context.Context) {
	task, ok := s.statusQueue.Dequeue()
	if !ok {
		return
	}

	repoStatus, err := s.central.Status(ctx, task.StagingRepoID)
	if err != nil {
		slog.Warn("Staging repository status check failed, requeueing",
			"coordinate", task.Coordinate.String(),
			"staging_repo_id", task.StagingRepoID,
			"error", err)
		s.statusQueue.Enqueue(task)
		return
	}

	switch repoStatus {
	case central.RepoStatusClosed:
		s.transition(ctx, task.Coordinate, status.StageClosed)
		s.releaseQueue.Enqueue(releaseTask{Coordinate: task.Coordinate, StagingRepoID: task.StagingRepoID})
	case central.RepoStatusReleased:
		s.transition(ctx, task.Coordinate, status.StageReleased)
		slog.Info("Staging repository released by target", "coordinate", task.Coordinate.String())
	case central.RepoStatusError:
		s.transition(ctx, task.Coordinate, status.StageError)
		slog.Error("Staging repository failed validation",
			"coordinate", task.Coordinate.String(),
			"staging_repo_id", task.StagingRepoID)
	default:
		// Still validating
		s.statusQueue.Enqueue(task)
	}
}

// processReleaseQueue promotes one validated staging repository. Failed
// promotions are retried a bounded number of times before the item is parked
// in ERROR.
func (s *Scheduler) processReleaseQueue(ctx context.Context) {
	task, ok := s.releaseQueue.Dequeue()
	if !ok {
		return
	}

	released, err := s.central.Release(ctx, task.StagingRepoID)
	s.metrics.RecordRelease(ctx, err == nil && released)
	if err != nil || !released {
		task.Attempts++
		if task.Attempts >= maxReleaseAttempts {
			slog.Error("Release failed, giving up",
				"coordinate", task.Coordinate.String(),
				"staging_repo_id", task.StagingRepoID,
				"attempts", task.Attempts,
				"error", err)
			s.transition(ctx, task.Coordinate, status.StageError)
			return
		}
		slog.Warn("Release failed, will retry",
			"coordinate", task.Coordinate.String(),
			"staging_repo_id", task.StagingRepoID,
			"attempts", task.Attempts,
			"error", err)
		s.releaseQueue.Enqueue(task)
		return
	}

	s.transition(ctx, task.Coordinate, status.StageReleased)
	slog.Info("Released", "coordinate", task.Coordinate.String())
}

// Snapshot returns the current queue contents for the operational API
func (s *Scheduler) Snapshot() PipelineSnapshot {
	s.mu.Lock()
	var inProgress *coordinates.Coordinate
	if s.uploadInProgress != nil {
		c := *s.uploadInProgress
		inProgress = &c
	}
	s.mu.Unlock()

	statusIDs := make([]string, 0, s.statusQueue.Len())
	for _, t := range s.statusQueue.Snapshot() {
		statusIDs = append(statusIDs, t.StagingRepoID)
	}
	releaseIDs := make([]string, 0, s.releaseQueue.Len())
	for _, t := range s.releaseQueue.Snapshot() {
		releaseIDs = append(releaseIDs, t.StagingRepoID)
	}

	return PipelineSnapshot{
		UploadInProgress: inProgress,
		UploadQueue:      s.uploadQueue.Snapshot(),
		StatusQueue:      statusIDs,
		ReleaseQueue:     releaseIDs,
		ScanRunning:      s.scanRunning.Load(),
	}
}

func (s *Scheduler) transition(ctx context.Context, coord coordinates.Coordinate, stage status.Stage) {
	_, err := s.orchestrator.TransitionStage(ctx, coord.GroupID, coord.ArtifactID, coord.Version, stage)
	if err != nil {
		slog.Error("Failed to persist stage",
			"coordinate", coord.String(),
			"stage", string(stage),
			"error", err)
	}
}

func (s *Scheduler) recordDepths(ctx context.Context) {
	s.metrics.RecordQueueDepth(ctx, "upload", int64(s.uploadQueue.Len()))
	s.metrics.RecordQueueDepth(ctx, "status", int64(s.statusQueue.Len()))
	s.metrics.RecordQueueDepth(ctx, "release", int64(s.releaseQueue.Len()))
}
