package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
)

type searchUsecase struct {
	provider domain.SearchProvider
	jobRepo  domain.JobRepository
	jobs     domain.JobUsecase
	validate *validator.Validate
}

func NewSearchUsecase(
	provider domain.SearchProvider,
	jobRepo domain.JobRepository,
	jobs domain.JobUsecase,
	validate *validator.Validate,
) domain.SearchUsecase {
	return &searchUsecase{provider: provider, jobRepo: jobRepo, jobs: jobs, validate: validate}
}

// Search queries the provider and marks results already tracked. is_saved is
// computed from the store on every call.
func (u *searchUsecase) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error) {
	query = query.WithDefaults()
	if err := validateStruct(u.validate, query); err != nil {
		return nil, err
	}

	results, err := u.provider.Search(ctx, query)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Upstream("Job search failed", err)
	}

	tracked, err := u.jobRepo.List(ctx, domain.JobFilter{})
	if err != nil {
		return nil, apperror.Upstream("Job store unavailable", err)
	}

	merged := Reconcile(results, tracked)
	return &domain.SearchResponse{Results: merged, Count: len(merged)}, nil
}

// Promote saves a search result as a tracked job. Promoting twice creates two jobs.
func (u *searchUsecase) Promote(ctx context.Context, result domain.SearchResult) (*domain.Job, error) {
	return u.jobs.CreateJob(ctx, Promote(result))
}
