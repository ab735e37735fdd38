package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/logger"
)

type jobUsecase struct {
	jobRepo        domain.JobRepository
	attachmentRepo domain.AttachmentRepository
	blobs          domain.BlobStore
	validate       *validator.Validate
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	attachmentRepo domain.AttachmentRepository,
	blobs domain.BlobStore,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:        jobRepo,
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		validate:       validate,
	}
}

// CreateJob validates input before touching the store. New jobs start as "new".
func (u *jobUsecase) CreateJob(ctx context.Context, input domain.JobInput) (*domain.Job, error) {
	input.Normalize()
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	job := &domain.Job{Status: domain.StatusNew, Source: domain.SourceManual}
	job.Apply(input)

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, storeError(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	for _, s := range filter.Statuses {
		if _, err := domain.ParseStatus(string(s)); err != nil {
			return nil, invalidStatus(string(s), err)
		}
	}
	jobs, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

// ReplaceJob overwrites every editable field. Status is only changed through the lifecycle.
func (u *jobUsecase) ReplaceJob(ctx context.Context, id string, input domain.JobInput) (*domain.Job, error) {
	input.Normalize()
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}
	job.Apply(input)

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, storeError(err, "Job not found")
	}
	return job, nil
}

// DeleteJob removes the job and its attachment metadata, then the attachment
// blobs. Blobs that could not be removed are reported and left to the sweeper.
func (u *jobUsecase) DeleteJob(ctx context.Context, id string) (*domain.DeleteReport, error) {
	attachments, err := u.attachmentRepo.ListByJobID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return nil, storeError(err, "Job not found")
	}

	report := &domain.DeleteReport{JobID: id, AttachmentsRemoved: len(attachments)}
	for _, a := range attachments {
		if err := u.blobs.Delete(ctx, a.StorageKey); err != nil {
			logger.Log.Warn("attachment blob cleanup deferred",
				"job_id", id, "attachment_id", a.ID, "error", err)
			report.BlobsPendingCleanup = append(report.BlobsPendingCleanup, a.StorageKey)
		}
	}
	return report, nil
}
