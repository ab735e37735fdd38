package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/repository/memory"
	"job-tracker-api/internal/usecase"
	"job-tracker-api/pkg/apperror"
)

func TestSetStatus_EveryTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewLifecycleUsecase(store.Jobs(), nil)

	for _, from := range domain.AllStatuses {
		for _, to := range domain.AllStatuses {
			job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1", Status: from}
			require.NoError(t, store.Jobs().Create(ctx, job))

			got, err := uc.SetStatus(ctx, job.ID, string(to))
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, got.Status)
			assert.Equal(t, "SWE", got.JobTitle)
		}
	}
}

func TestSetStatus_RejectedBackToNew(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewLifecycleUsecase(store.Jobs(), nil)

	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1", Status: domain.StatusRejected}
	require.NoError(t, store.Jobs().Create(ctx, job))

	got, err := uc.SetStatus(ctx, job.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, got.Status)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	repo := new(MockJobRepo)
	uc := usecase.NewLifecycleUsecase(repo, nil)

	for _, raw := range []string{"", "archived", "NEW", "interviewing"} {
		_, err := uc.SetStatus(context.Background(), "job-1", raw)
		assert.True(t, apperror.IsValidation(err), raw)
		assert.True(t, apperror.Is(err, apperror.KindInvalidStatus), raw)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	}
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "PatchStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatus_UnknownJob(t *testing.T) {
	uc := usecase.NewLifecycleUsecase(memory.New().Jobs(), nil)
	_, err := uc.SetStatus(context.Background(), "missing", "applied")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSetStatus_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	pub := new(MockPublisher)
	uc := usecase.NewLifecycleUsecase(store.Jobs(), pub)

	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1", Status: domain.StatusNew}
	require.NoError(t, store.Jobs().Create(ctx, job))

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.JobEvent) bool {
		return e.Type == domain.EventJobStatusChanged && e.JobID == job.ID &&
			e.From == domain.StatusNew && e.To == domain.StatusShortlisted && !e.At.IsZero()
	})).Return(nil).Once()

	_, err := uc.SetStatus(ctx, job.ID, "shortlisted")
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestSetStatus_PublishFailureIsNotReturned(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	uc := usecase.NewLifecycleUsecase(store.Jobs(), pub)

	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1", Status: domain.StatusNew}
	require.NoError(t, store.Jobs().Create(ctx, job))

	got, err := uc.SetStatus(ctx, job.ID, "viewed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusViewed, got.Status)
}

func TestSetStatus_StoreFailure(t *testing.T) {
	repo := new(MockJobRepo)
	repo.On("GetByID", mock.Anything, "job-1").Return(&domain.Job{ID: "job-1", Status: domain.StatusNew}, nil)
	repo.On("PatchStatus", mock.Anything, "job-1", domain.StatusApplied).Return(nil, errors.New("timeout"))
	uc := usecase.NewLifecycleUsecase(repo, nil)

	_, err := uc.SetStatus(context.Background(), "job-1", "applied")
	assert.True(t, apperror.Is(err, apperror.KindUpstream))
	repo.AssertExpectations(t)
}

func TestAllowedTargets(t *testing.T) {
	for _, current := range domain.AllStatuses {
		targets := usecase.AllowedTargets(current)
		assert.Len(t, targets, 4)
		assert.NotContains(t, targets, current)
	}
}
