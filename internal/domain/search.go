package domain

import "context"

// Job boards understood by the search provider.
const (
	SiteIndeed       = "indeed"
	SiteLinkedIn     = "linkedin"
	SiteZipRecruiter = "zip_recruiter"
	SiteGlassdoor    = "glassdoor"
	SiteGoogle       = "google"
)

var SearchSites = []string{SiteIndeed, SiteLinkedIn, SiteZipRecruiter, SiteGlassdoor, SiteGoogle}

// Search defaults
const (
	DefaultResultsWanted = 20
	DefaultDistance      = 50
	DefaultHoursOld      = 72
	MaxResultsWanted     = 100
)

// SearchQuery carries the parameters of a single provider invocation.
type SearchQuery struct {
	SearchTerm    string   `json:"search_term"`
	Location      string   `json:"location"`
	Sites         []string `json:"sites" validate:"dive,search_site"`
	JobType       JobType  `json:"job_type" validate:"job_type"`
	IsRemote      bool     `json:"is_remote"`
	ResultsWanted int      `json:"results_wanted" validate:"gte=0,lte=100"`
	HoursOld      int      `json:"hours_old" validate:"gte=0"`
	Distance      int      `json:"distance" validate:"gte=0"`
	CountryIndeed string   `json:"country_indeed"`
}

// WithDefaults fills zero values with the provider defaults.
func (q SearchQuery) WithDefaults() SearchQuery {
	if len(q.Sites) == 0 {
		q.Sites = []string{SiteIndeed, SiteLinkedIn}
	}
	if q.ResultsWanted == 0 {
		q.ResultsWanted = DefaultResultsWanted
	}
	if q.Distance == 0 {
		q.Distance = DefaultDistance
	}
	if q.HoursOld == 0 {
		q.HoursOld = DefaultHoursOld
	}
	return q
}

// SearchResult is an ephemeral posting returned by a job board. It is never persisted as such.
type SearchResult struct {
	JobTitle    string  `json:"job_title"`
	CompanyName string  `json:"company_name,omitempty"`
	Location    string  `json:"location,omitempty"`
	JobURL      string  `json:"job_url"`
	Description string  `json:"description,omitempty"`
	Salary      string  `json:"salary,omitempty"`
	JobType     JobType `json:"job_type,omitempty"`
	IsRemote    bool    `json:"is_remote"`
	Site        string  `json:"site,omitempty"`
	DatePosted  string  `json:"date_posted,omitempty"`
	IsSaved     bool    `json:"is_saved"`
}

type SearchResponse struct {
	Results []SearchResult `json:"jobs"`
	Count   int            `json:"count"`
}

// SearchProvider queries external job boards.
type SearchProvider interface {
	Search(ctx context.Context, query SearchQuery) ([]SearchResult, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResponse, error)
	Promote(ctx context.Context, result SearchResult) (*Job, error)
}
