// Package maintenance runs background housekeeping for attachment storage.
package maintenance

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/logger"
)

// BlobSweeper deletes blobs that no attachment references. Only keys shaped
// like attachment storage keys are considered; foreign objects in a shared
// bucket are never touched. A key must be unreferenced on two consecutive
// sweeps before it is removed, so blobs of an upload still in flight survive.
type BlobSweeper struct {
	blobs       domain.BlobStore
	attachments domain.AttachmentRepository
	spec        string
	cron        *cron.Cron

	mu       sync.Mutex
	suspects map[string]struct{}
}

func NewBlobSweeper(blobs domain.BlobStore, attachments domain.AttachmentRepository, spec string) *BlobSweeper {
	return &BlobSweeper{
		blobs:       blobs,
		attachments: attachments,
		spec:        spec,
		cron:        cron.New(),
		suspects:    make(map[string]struct{}),
	}
}

// Start registers the sweep with the cron scheduler. ctx bounds every run.
func (s *BlobSweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		removed, err := s.Sweep(ctx)
		if err != nil {
			logger.Log.Error("blob sweep failed", "error", err)
			return
		}
		if removed > 0 {
			logger.Log.Info("blob sweep removed orphans", "count", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	logger.Log.Info("blob sweeper started", "spec", s.spec)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *BlobSweeper) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("blob sweeper stopped")
}

// Sweep runs one pass and returns the number of blobs deleted.
func (s *BlobSweeper) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.blobs.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list blobs: %w", err)
	}

	next := make(map[string]struct{})
	removed := 0
	for _, key := range keys {
		if !domain.IsStorageKey(key) {
			continue
		}
		referenced, err := s.attachments.StorageKeyExists(ctx, key)
		if err != nil {
			return removed, fmt.Errorf("check %s: %w", key, err)
		}
		if referenced {
			continue
		}
		if _, seen := s.suspects[key]; !seen {
			next[key] = struct{}{}
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			logger.Log.Warn("failed to delete orphan blob", "storage_key", key, "error", err)
			next[key] = struct{}{}
			continue
		}
		removed++
	}
	s.suspects = next
	return removed, nil
}
