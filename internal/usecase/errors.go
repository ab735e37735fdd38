package usecase

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/validation"
)

func notFound(message string) *apperror.AppError {
	return apperror.New(http.StatusNotFound, apperror.KindNotFound, message, domain.ErrNotFound)
}

// storeError translates a repository error. Anything that is neither an
// AppError nor ErrNotFound means the store misbehaved.
func storeError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(notFoundMessage)
	}
	return apperror.Upstream("Store unavailable", err)
}

func validateStruct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return apperror.Validation("Validation failed", validation.FormatValidationErrors(err)...)
	}
	return nil
}
