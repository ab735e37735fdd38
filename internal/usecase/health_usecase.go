package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

// Check runs every dependency check with a short timeout. Any failure degrades the overall status.
func (u *healthUsecase) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Components: make(map[string]string, len(u.checks))}

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.checks[name](cctx)
		cancel()
		if err != nil {
			report.Components[name] = "down: " + err.Error()
			report.Status = "degraded"
			continue
		}
		report.Components[name] = "ok"
	}
	return report
}
