package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/dndsfx/soundboard/internal/catalogsync"
)

// CatalogSyncer reconciles the audio directory tree into the catalog.
type CatalogSyncer interface {
	Sync(ctx context.Context) (catalogsync.Result, error)
}

// CatalogSyncTask walks the audio directory and upserts the catalog.
// Requests are deduplicated while one is pending: re-running a sync on an
// unchanged tree is a no-op anyway, so MaxAttempts stays at 1.
type CatalogSyncTask struct{}

// Config returns the queue configuration for catalog sync tasks.
func (t CatalogSyncTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "catalog_sync",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CatalogSyncProcessor creates a processor function for CatalogSyncTask.
func CatalogSyncProcessor(syncer CatalogSyncer) backlite.QueueProcessor[CatalogSyncTask] {
	return func(ctx context.Context, task CatalogSyncTask) error {
		if syncer == nil {
			return fmt.Errorf("catalog syncer not configured")
		}

		result, err := syncer.Sync(ctx)
		if err != nil {
			return fmt.Errorf("catalog sync: %w", err)
		}

		log.Printf("[TASK] Catalog sync done: %s", result)
		return nil
	}
}

// NewCatalogSyncQueue creates a backlite queue for catalog sync tasks.
func NewCatalogSyncQueue(syncer CatalogSyncer) backlite.Queue {
	return backlite.NewQueue(CatalogSyncProcessor(syncer))
}
