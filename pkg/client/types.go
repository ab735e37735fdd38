package client

import "time"

// Job statuses accepted by SetStatus and the status filter of ListJobs.
const (
	StatusNew         = "new"
	StatusViewed      = "viewed"
	StatusApplied     = "applied"
	StatusRejected    = "rejected"
	StatusShortlisted = "shortlisted"
)

// Attachment file types.
const (
	FileTypeResume      = "resume"
	FileTypeCoverLetter = "cover_letter"
)

// Job sources as reported by the API.
const (
	SourceManual = "manual"
	SourceSearch = "mcp"
)

type Job struct {
	ID          string    `json:"id"`
	JobTitle    string    `json:"job_title"`
	CompanyName *string   `json:"company_name"`
	Location    *string   `json:"location"`
	JobURL      string    `json:"job_url"`
	Description *string   `json:"description"`
	Salary      *string   `json:"salary"`
	JobType     string    `json:"job_type"`
	IsRemote    bool      `json:"is_remote"`
	Notes       *string   `json:"notes"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobInput is the body of CreateJob and ReplaceJob.
type JobInput struct {
	JobTitle    string  `json:"job_title"`
	CompanyName *string `json:"company_name,omitempty"`
	Location    *string `json:"location,omitempty"`
	JobURL      string  `json:"job_url"`
	Description *string `json:"description,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	JobType     string  `json:"job_type,omitempty"`
	IsRemote    bool    `json:"is_remote"`
	Notes       *string `json:"notes,omitempty"`
	Source      string  `json:"source,omitempty"`
}

type DeleteReport struct {
	JobID               string   `json:"job_id"`
	AttachmentsRemoved  int      `json:"attachments_removed"`
	BlobsPendingCleanup []string `json:"blobs_pending_cleanup,omitempty"`
}

// JobStatus is the current status of a job and the statuses it may move to.
type JobStatus struct {
	JobID          string   `json:"job_id"`
	Status         string   `json:"status"`
	AllowedTargets []string `json:"allowed_targets"`
}

// SearchQuery is the body of Search. Zero values take the server defaults.
type SearchQuery struct {
	SearchTerm    string   `json:"search_term,omitempty"`
	Location      string   `json:"location,omitempty"`
	Sites         []string `json:"sites,omitempty"`
	JobType       string   `json:"job_type,omitempty"`
	IsRemote      bool     `json:"is_remote,omitempty"`
	ResultsWanted int      `json:"results_wanted,omitempty"`
	HoursOld      int      `json:"hours_old,omitempty"`
	Distance      int      `json:"distance,omitempty"`
	CountryIndeed string   `json:"country_indeed,omitempty"`
}

type SearchResult struct {
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name,omitempty"`
	Location    string `json:"location,omitempty"`
	JobURL      string `json:"job_url"`
	Description string `json:"description,omitempty"`
	Salary      string `json:"salary,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	IsRemote    bool   `json:"is_remote"`
	Site        string `json:"site,omitempty"`
	DatePosted  string `json:"date_posted,omitempty"`
	IsSaved     bool   `json:"is_saved"`
}

type SearchResponse struct {
	Results []SearchResult `json:"jobs"`
	Count   int            `json:"count"`
}

type Attachment struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	MIMEType  string    `json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}
