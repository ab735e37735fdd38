package usecase

import "job-tracker-api/internal/domain"

// Reconcile marks each result saved iff a tracked job has the identical job_url.
// Matching is exact string equality: no scheme, trailing slash or query
// normalization. The input slice is not modified.
func Reconcile(results []domain.SearchResult, jobs []domain.Job) []domain.SearchResult {
	saved := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		if j.JobURL != "" {
			saved[j.JobURL] = struct{}{}
		}
	}

	out := make([]domain.SearchResult, len(results))
	for i, r := range results {
		_, r.IsSaved = saved[r.JobURL]
		out[i] = r
	}
	return out
}

// Promote converts a search result into a job payload sourced from search.
// It does not check for an existing job with the same URL.
func Promote(result domain.SearchResult) domain.JobInput {
	return domain.JobInput{
		JobTitle:    result.JobTitle,
		CompanyName: optional(result.CompanyName),
		Location:    optional(result.Location),
		JobURL:      result.JobURL,
		Description: optional(result.Description),
		Salary:      optional(result.Salary),
		JobType:     result.JobType,
		IsRemote:    result.IsRemote,
		Source:      domain.SourceSearch,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
