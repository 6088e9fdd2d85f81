// Package scheduler runs the optional periodic catalog refresh. The
// storefront works fine with the one-shot startup fetch; deployments
// pointing at a frequently changing remote catalog can enable the
// schedule instead of restarting the process.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookstore/internal/tasks"
)

// CatalogRefreshScheduler enqueues catalog refresh tasks on a cron schedule.
type CatalogRefreshScheduler struct {
	taskClient *tasks.Client
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCatalogRefreshScheduler creates a new scheduler instance.
func NewCatalogRefreshScheduler(taskClient *tasks.Client, schedule string) *CatalogRefreshScheduler {
	return &CatalogRefreshScheduler{
		taskClient: taskClient,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *CatalogRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueueRefresh()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Catalog refresh scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *CatalogRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Catalog refresh scheduler: stopped")
}

func (s *CatalogRefreshScheduler) enqueueRefresh() {
	if _, err := s.taskClient.Add(tasks.RefreshCatalogTask{Reason: "scheduled"}).Save(); err != nil {
		log.Printf("Catalog refresh scheduler: failed to enqueue refresh: %v", err)
	}
}
