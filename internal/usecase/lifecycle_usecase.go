package usecase

import (
	"context"
	"fmt"
	"time"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/logger"
)

type lifecycleUsecase struct {
	jobRepo   domain.JobRepository
	publisher domain.EventPublisher
	now       func() time.Time
}

func NewLifecycleUsecase(jobRepo domain.JobRepository, publisher domain.EventPublisher) domain.LifecycleUsecase {
	if publisher == nil {
		publisher = domain.NopPublisher{}
	}
	return &lifecycleUsecase{jobRepo: jobRepo, publisher: publisher, now: time.Now}
}

func invalidStatus(raw string, err error) error {
	return apperror.InvalidStatus(
		fmt.Sprintf("Invalid status %q: must be one of new, viewed, applied, rejected, shortlisted", raw), err)
}

// SetStatus moves a job to any status. The lifecycle is a free-form board:
// no ordering, no terminal state.
func (u *lifecycleUsecase) SetStatus(ctx context.Context, jobID string, status string) (*domain.Job, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, invalidStatus(status, err)
	}

	prev, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}

	job, err := u.jobRepo.PatchStatus(ctx, jobID, next)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}

	event := domain.JobEvent{
		Type:  domain.EventJobStatusChanged,
		JobID: job.ID,
		From:  prev.Status,
		To:    job.Status,
		At:    u.now().UTC(),
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warn("failed to publish job event", "job_id", job.ID, "type", event.Type, "error", err)
	}
	return job, nil
}

// AllowedTargets lists the statuses offered from current: every other status.
func AllowedTargets(current domain.JobStatus) []domain.JobStatus {
	out := make([]domain.JobStatus, 0, len(domain.AllStatuses)-1)
	for _, s := range domain.AllStatuses {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}
