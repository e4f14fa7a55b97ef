package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mvnpm/central-sync-server/internal/central"
	centralmocks "github.com/mvnpm/central-sync-server/internal/central/mocks"
	"github.com/mvnpm/central-sync-server/internal/coordinates"
	"github.com/mvnpm/central-sync-server/internal/status"
	storagemocks "github.com/mvnpm/central-sync-server/internal/storage/mocks"
	syncmocks "github.com/mvnpm/central-sync-server/internal/sync/mocks"
)

type schedulerFixture struct {
	scheduler    *Scheduler
	orchestrator *syncmocks.MockOrchestrator
	central      *centralmocks.MockFacade
	files        *storagemocks.MockFileStore
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &schedulerFixture{
		orchestrator: syncmocks.NewMockOrchestrator(ctrl),
		central:      centralmocks.NewMockFacade(ctrl),
		files:        storagemocks.NewMockFileStore(ctrl),
	}
	f.scheduler = New(f.orchestrator, f.central, f.files)
	return f
}

func testItem(stage status.Stage) *status.SyncItem {
	return &status.SyncItem{
		GroupID:    "org.mvnpm",
		ArtifactID: "lit",
		Version:    "3.1.0",
		Stage:      stage,
	}
}

var testCoord = coordinates.Coordinate{GroupID: "org.mvnpm", ArtifactID: "lit", Version: "3.1.0"}

func TestAddToSyncQueue(t *testing.T) {
	t.Parallel()

	t.Run("eligible coordinate is queued once", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(true, nil)
		f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.2.0").Return(true, nil)

		added, err := f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.1.0")
		require.NoError(t, err)
		assert.True(t, added)

		// Re-adding a queued coordinate is a no-op and skips the eligibility check
		added, err = f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.1.0")
		require.NoError(t, err)
		assert.False(t, added)

		added, err = f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.2.0")
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 2, f.scheduler.uploadQueue.Len())
	})

	t.Run("ineligible coordinate is refused", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(false, nil)

		added, err := f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.1.0")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
	})

	t.Run("eligibility check failure is reported", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().
			CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").
			Return(false, errors.New("db down"))

		_, err := f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.1.0")
		require.Error(t, err)
		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
	})

	t.Run("in-flight coordinate is refused", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)

		coord := testCoord
		f.scheduler.mu.Lock()
		f.scheduler.uploadInProgress = &coord
		f.scheduler.mu.Unlock()

		// No eligibility check expected for a coordinate being uploaded
		added, err := f.scheduler.AddToSyncQueue(context.Background(), "org.mvnpm", "lit", "3.1.0")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
	})
}

func TestProcessUploadQueue(t *testing.T) {
	t.Parallel()

	t.Run("successful upload moves the task to the status queue", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		item := testItem(status.StageNone)
		f.orchestrator.EXPECT().
			SyncInfo(gomock.Any(), "org.mvnpm", "lit", "3.1.0").
			Return(item, true, nil)
		f.orchestrator.EXPECT().Sync(gomock.Any(), item).Return("orgmvnpm-4242", nil)

		f.scheduler.uploadQueue.Enqueue(testCoord)
		f.scheduler.processUploadQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
		require.Equal(t, 1, f.scheduler.statusQueue.Len())
		task, _ := f.scheduler.statusQueue.Dequeue()
		assert.Equal(t, "orgmvnpm-4242", task.StagingRepoID)
		assert.Equal(t, testCoord, task.Coordinate)
	})

	t.Run("ineligible coordinate is dropped", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().
			SyncInfo(gomock.Any(), "org.mvnpm", "lit", "3.1.0").
			Return(testItem(status.StageReleased), false, nil)

		f.scheduler.uploadQueue.Enqueue(testCoord)
		f.scheduler.processUploadQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
		assert.Equal(t, 0, f.scheduler.statusQueue.Len())
	})

	t.Run("state lookup failure requeues the coordinate", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().
			SyncInfo(gomock.Any(), "org.mvnpm", "lit", "3.1.0").
			Return(nil, false, errors.New("db down"))

		f.scheduler.uploadQueue.Enqueue(testCoord)
		f.scheduler.processUploadQueue(context.Background())

		assert.Equal(t, 1, f.scheduler.uploadQueue.Len())
	})

	t.Run("upload failure does not reach the status queue", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		item := testItem(status.StageNone)
		f.orchestrator.EXPECT().
			SyncInfo(gomock.Any(), "org.mvnpm", "lit", "3.1.0").
			Return(item, true, nil)
		f.orchestrator.EXPECT().Sync(gomock.Any(), item).Return("", errors.New("upload refused"))

		f.scheduler.uploadQueue.Enqueue(testCoord)
		f.scheduler.processUploadQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.statusQueue.Len())
	})

	t.Run("at most one upload runs at a time", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)

		other := coordinates.Coordinate{GroupID: "org.mvnpm", ArtifactID: "other", Version: "1.0.0"}
		f.scheduler.mu.Lock()
		f.scheduler.uploadInProgress = &other
		f.scheduler.mu.Unlock()

		// No orchestrator calls expected while another upload is in flight
		f.scheduler.uploadQueue.Enqueue(testCoord)
		f.scheduler.processUploadQueue(context.Background())

		assert.Equal(t, 1, f.scheduler.uploadQueue.Len())
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.scheduler.processUploadQueue(context.Background())
	})
}

func TestProcessStatusQueue(t *testing.T) {
	t.Parallel()

	enqueueStatus := func(s *Scheduler) {
		s.statusQueue.Enqueue(statusTask{Coordinate: testCoord, StagingRepoID: "orgmvnpm-4242"})
	}

	t.Run("open repository is requeued", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Status(gomock.Any(), "orgmvnpm-4242").Return(central.RepoStatusOpen, nil)

		enqueueStatus(f.scheduler)
		f.scheduler.processStatusQueue(context.Background())

		assert.Equal(t, 1, f.scheduler.statusQueue.Len())
		assert.Equal(t, 0, f.scheduler.releaseQueue.Len())
	})

	t.Run("closed repository moves to the release queue", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Status(gomock.Any(), "orgmvnpm-4242").Return(central.RepoStatusClosed, nil)
		f.orchestrator.EXPECT().
			TransitionStage(gomock.Any(), "org.mvnpm", "lit", "3.1.0", status.StageClosed).
			Return(testItem(status.StageClosed), nil)

		enqueueStatus(f.scheduler)
		f.scheduler.processStatusQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.statusQueue.Len())
		require.Equal(t, 1, f.scheduler.releaseQueue.Len())
		task, _ := f.scheduler.releaseQueue.Dequeue()
		assert.Equal(t, "orgmvnpm-4242", task.StagingRepoID)
		assert.Equal(t, 0, task.Attempts)
	})

	t.Run("released repository finishes the pipeline", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Status(gomock.Any(), "orgmvnpm-4242").Return(central.RepoStatusReleased, nil)
		f.orchestrator.EXPECT().
			TransitionStage(gomock.Any(), "org.mvnpm", "lit", "3.1.0", status.StageReleased).
			Return(testItem(status.StageReleased), nil)

		enqueueStatus(f.scheduler)
		f.scheduler.processStatusQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.statusQueue.Len())
		assert.Equal(t, 0, f.scheduler.releaseQueue.Len())
	})

	t.Run("failed validation parks the item", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Status(gomock.Any(), "orgmvnpm-4242").Return(central.RepoStatusError, nil)
		f.orchestrator.EXPECT().
			TransitionStage(gomock.Any(), "org.mvnpm", "lit", "3.1.0", status.StageError).
			Return(testItem(status.StageError), nil)

		enqueueStatus(f.scheduler)
		f.scheduler.processStatusQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.statusQueue.Len())
		assert.Equal(t, 0, f.scheduler.releaseQueue.Len())
	})

	t.Run("status check failure requeues the task", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Status(gomock.Any(), "orgmvnpm-4242").Return(central.RepoStatusUnknown, errors.New("timeout"))

		enqueueStatus(f.scheduler)
		f.scheduler.processStatusQueue(context.Background())

		assert.Equal(t, 1, f.scheduler.statusQueue.Len())
	})
}

func TestProcessReleaseQueue(t *testing.T) {
	t.Parallel()

	enqueueRelease := func(s *Scheduler, attempts int) {
		s.releaseQueue.Enqueue(releaseTask{Coordinate: testCoord, StagingRepoID: "orgmvnpm-4242", Attempts: attempts})
	}

	t.Run("successful release transitions to RELEASED", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Release(gomock.Any(), "orgmvnpm-4242").Return(true, nil)
		f.orchestrator.EXPECT().
			TransitionStage(gomock.Any(), "org.mvnpm", "lit", "3.1.0", status.StageReleased).
			Return(testItem(status.StageReleased), nil)

		enqueueRelease(f.scheduler, 0)
		f.scheduler.processReleaseQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.releaseQueue.Len())
	})

	t.Run("failed release is retried", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Release(gomock.Any(), "orgmvnpm-4242").Return(false, errors.New("promote failed"))

		enqueueRelease(f.scheduler, 0)
		f.scheduler.processReleaseQueue(context.Background())

		require.Equal(t, 1, f.scheduler.releaseQueue.Len())
		task, _ := f.scheduler.releaseQueue.Dequeue()
		assert.Equal(t, 1, task.Attempts)
	})

	t.Run("exhausted retries park the item in error", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.central.EXPECT().Release(gomock.Any(), "orgmvnpm-4242").Return(false, errors.New("promote failed"))
		f.orchestrator.EXPECT().
			TransitionStage(gomock.Any(), "org.mvnpm", "lit", "3.1.0", status.StageError).
			Return(testItem(status.StageError), nil)

		enqueueRelease(f.scheduler, maxReleaseAttempts-1)
		f.scheduler.processReleaseQueue(context.Background())

		assert.Equal(t, 0, f.scheduler.releaseQueue.Len())
	})
}

func TestSyncLatest(t *testing.T) {
	t.Parallel()

	t.Run("eligible coordinate is queued", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "lit").Return("3.1.0", nil)
		f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(true, nil)

		require.NoError(t, f.scheduler.SyncLatest(context.Background(), "org.mvnpm", "lit"))
		assert.True(t, f.scheduler.uploadQueue.Contains(testCoord))
	})

	t.Run("ineligible coordinate is skipped", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "lit").Return("3.1.0", nil)
		f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(false, nil)

		require.NoError(t, f.scheduler.SyncLatest(context.Background(), "org.mvnpm", "lit"))
		assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
	})

	t.Run("resolution failure is reported", func(t *testing.T) {
		t.Parallel()

		f := newSchedulerFixture(t)
		f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "lit").Return("", errors.New("registry down"))

		require.Error(t, f.scheduler.SyncLatest(context.Background(), "org.mvnpm", "lit"))
	})
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)

	f.files.EXPECT().ArtifactRoots(gomock.Any()).Return([]string{
		"/repo/org/mvnpm/lit",
		"/repo/org/mvnpm/at/lit/reactive-element",
		"/repo/org/mvnpm/at/mvnpm/importmap", // internal group, skipped
		"/repo/com/example/other",            // outside the managed namespace, skipped
	}, nil)

	f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "lit").Return("3.1.0", nil)
	f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(true, nil)
	f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm.at.lit", "reactive-element").Return("2.0.4", nil)
	f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm.at.lit", "reactive-element", "2.0.4").Return(false, nil)

	f.scheduler.CheckAll(context.Background())

	assert.Equal(t, 1, f.scheduler.uploadQueue.Len())
	assert.True(t, f.scheduler.uploadQueue.Contains(testCoord))
}

// logBuffer is a goroutine-safe sink for captured log output
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// No t.Parallel: swaps the process-wide default logger
func TestCheckAllWarnsOnInternalPackages(t *testing.T) {
	f := newSchedulerFixture(t)

	var buf logBuffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	f.files.EXPECT().ArtifactRoots(gomock.Any()).Return([]string{
		"/repo/org/mvnpm/at/mvnpm/importmap",
	}, nil)

	f.scheduler.CheckAll(context.Background())

	assert.Contains(t, buf.String(), "Skipping internal package")
	assert.Contains(t, buf.String(), "@mvnpm/importmap")
	assert.Equal(t, 0, f.scheduler.uploadQueue.Len())
}

func TestCheckAllSkipsWhenAlreadyRunning(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)

	// Simulate a scan already in flight: no file store calls expected
	f.scheduler.scanRunning.Store(true)
	f.scheduler.CheckAll(context.Background())
}

func TestCheckAllContinuesPastFailures(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)

	f.files.EXPECT().ArtifactRoots(gomock.Any()).Return([]string{
		"/repo/org/mvnpm/broken",
		"/repo/org/mvnpm/lit",
	}, nil)

	f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "broken").Return("", errors.New("registry down"))
	f.orchestrator.EXPECT().LatestVersion(gomock.Any(), "org.mvnpm", "lit").Return("3.1.0", nil)
	f.orchestrator.EXPECT().CanSync(gomock.Any(), "org.mvnpm", "lit", "3.1.0").Return(true, nil)

	f.scheduler.CheckAll(context.Background())

	assert.Equal(t, 1, f.scheduler.uploadQueue.Len())
}

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)
	f.scheduler.queueInterval = 5 * time.Millisecond

	require.NoError(t, f.scheduler.Start(context.Background()))
	// Let the empty queues tick a few times before shutting down
	time.Sleep(20 * time.Millisecond)
	f.scheduler.Stop()
}

func TestSchedulerStartRejectsInvalidCron(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)
	f.scheduler.discoveryCron = "not a schedule"

	require.Error(t, f.scheduler.Start(context.Background()))
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	f := newSchedulerFixture(t)

	coord := testCoord
	f.scheduler.mu.Lock()
	f.scheduler.uploadInProgress = &coord
	f.scheduler.mu.Unlock()

	f.scheduler.uploadQueue.Enqueue(coordinates.Coordinate{GroupID: "org.mvnpm", ArtifactID: "other", Version: "1.0.0"})
	f.scheduler.statusQueue.Enqueue(statusTask{Coordinate: testCoord, StagingRepoID: "orgmvnpm-1"})
	f.scheduler.releaseQueue.Enqueue(releaseTask{Coordinate: testCoord, StagingRepoID: "orgmvnpm-2"})

	snap := f.scheduler.Snapshot()
	require.NotNil(t, snap.UploadInProgress)
	assert.Equal(t, testCoord, *snap.UploadInProgress)
	assert.Len(t, snap.UploadQueue, 1)
	assert.Equal(t, []string{"orgmvnpm-1"}, snap.StatusQueue)
	assert.Equal(t, []string{"orgmvnpm-2"}, snap.ReleaseQueue)
	assert.False(t, snap.ScanRunning)
}
