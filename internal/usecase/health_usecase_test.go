package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"job-tracker-api/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	report := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok}).Check(context.Background())
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "ok", report.Components["database"])

	report = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": down}).Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "down: refused", report.Components["redis"])

	report = usecase.NewHealthUsecase(nil).Check(context.Background())
	assert.Equal(t, "ok", report.Status)
}
