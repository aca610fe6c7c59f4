package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dndsfx/soundboard/internal/catalogsync"
)

// recordingSyncer counts sync runs for queue round-trip tests.
type recordingSyncer struct {
	result catalogsync.Result
	err    error
	ran    chan struct{}
}

func newRecordingSyncer() *recordingSyncer {
	return &recordingSyncer{
		result: catalogsync.Result{SoundsAdded: 1},
		ran:    make(chan struct{}, 1),
	}
}

func (s *recordingSyncer) Sync(ctx context.Context) (catalogsync.Result, error) {
	s.ran <- struct{}{}
	return s.result, s.err
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "soundboard.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	// The queue gets its own database next to the main one
	tasksDBPath := filepath.Join(tmpDir, "soundboard-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "soundboard.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

func TestCatalogSyncEnqueue(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "soundboard.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	syncer := newRecordingSyncer()
	client.Register(NewCatalogSyncQueue(syncer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(CatalogSyncTask{}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case <-syncer.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog sync task was not executed within timeout")
	}
}

func TestCatalogSyncTaskConfig(t *testing.T) {
	cfg := CatalogSyncTask{}.Config()

	assert.Equal(t, "catalog_sync", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Duration)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}
