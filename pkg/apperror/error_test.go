package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"job-tracker-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("x").Code)
	assert.Equal(t, http.StatusBadRequest, apperror.Validation("x").Code)
	assert.Equal(t, http.StatusBadRequest, apperror.InvalidStatus("x", nil).Code)
	assert.Equal(t, http.StatusBadGateway, apperror.Upstream("x", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, apperror.Internal(errors.New("boom")).Code)
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", apperror.NotFound("Job not found"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.False(t, apperror.Is(nil, apperror.KindNotFound))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := apperror.Upstream("search failed", sentinel)
	assert.ErrorIs(t, err, sentinel)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, apperror.IsValidation(apperror.Validation("bad")))
	assert.True(t, apperror.IsValidation(apperror.InvalidStatus("bad", nil)))
	assert.False(t, apperror.IsValidation(apperror.NotFound("x")))
	assert.False(t, apperror.IsValidation(nil))
}
