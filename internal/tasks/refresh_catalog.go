package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookstore/internal/catalog"
)

// RefreshCatalogTask re-fetches the remote catalog into the local
// cache. Enqueued by the refresh endpoint and the periodic scheduler.
type RefreshCatalogTask struct {
	Reason string `json:"reason"`
}

// Config returns the queue configuration for catalog refresh tasks.
func (t RefreshCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_catalog",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshCatalogProcessor creates a processor function for RefreshCatalogTask.
func RefreshCatalogProcessor(svc *catalog.Service) backlite.QueueProcessor[RefreshCatalogTask] {
	return func(ctx context.Context, task RefreshCatalogTask) error {
		if svc == nil {
			return fmt.Errorf("catalog service not configured")
		}

		if err := svc.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh catalog (%s): %w", task.Reason, err)
		}

		log.Printf("[TASK] Catalog refreshed (%s)", task.Reason)
		return nil
	}
}

// NewRefreshCatalogQueue creates a backlite queue for catalog refresh tasks.
func NewRefreshCatalogQueue(svc *catalog.Service) backlite.Queue {
	return backlite.NewQueue(RefreshCatalogProcessor(svc))
}
