// Package scheduler runs the periodic catalog resync when one is
// configured. New audio dropped on disk shows up in the catalog without an
// operator having to trigger a sync by hand.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dndsfx/soundboard/internal/catalogsync"
)

// CatalogSyncScheduler runs the filesystem-to-catalog reconciler on a cron
// schedule.
type CatalogSyncScheduler struct {
	syncer   *catalogsync.Syncer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewCatalogSyncScheduler creates a scheduler with a standard five-field
// cron schedule.
func NewCatalogSyncScheduler(syncer *catalogsync.Syncer, schedule string) *CatalogSyncScheduler {
	return &CatalogSyncScheduler{
		syncer:   syncer,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid catalog sync schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Catalog sync scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync.
func (s *CatalogSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Catalog sync scheduler: stopped")
}

// RunNow triggers an immediate sync outside the schedule.
func (s *CatalogSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *CatalogSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sync will occur.
func (s *CatalogSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync performs one reconciliation pass, skipping overlapping runs.
func (s *CatalogSyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Catalog sync: skipped (already syncing)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := s.syncer.Sync(ctx)
	if err != nil {
		log.Printf("Catalog sync: failed: %v", err)
		return
	}
	log.Printf("Catalog sync: %s in %v", result, time.Since(start).Round(time.Millisecond))
}
