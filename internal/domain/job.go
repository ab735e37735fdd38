package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidStatus = errors.New("invalid job status")
)

// JobStatus is the lifecycle stage of a tracked job.
type JobStatus string

const (
	StatusNew         JobStatus = "new"
	StatusViewed      JobStatus = "viewed"
	StatusApplied     JobStatus = "applied"
	StatusRejected    JobStatus = "rejected"
	StatusShortlisted JobStatus = "shortlisted"
)

// AllStatuses lists every status in display order.
var AllStatuses = []JobStatus{StatusNew, StatusViewed, StatusApplied, StatusRejected, StatusShortlisted}

// ParseStatus converts a raw string to a JobStatus. Unknown values wrap ErrInvalidStatus.
func ParseStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusNew, StatusViewed, StatusApplied, StatusRejected, StatusShortlisted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// JobType is the employment type of a posting. The zero value means unset.
type JobType string

const (
	JobTypeUnset      JobType = ""
	JobTypeFullTime   JobType = "fulltime"
	JobTypePartTime   JobType = "parttime"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeUnset, JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// Job sources
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
	JobType     JobType   `json:"job_type"`
	IsRemote    bool      `json:"is_remote"`
	Notes       *string   `json:"notes"`
	Source      string    `json:"source"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobInput is the editable payload of a job, used for create and full replace.
type JobInput struct {
	JobTitle    string  `json:"job_title" validate:"notblank"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	JobURL      string  `json:"job_url" validate:"notblank"`
	Description *string `json:"description"`
	Salary      *string `json:"salary"`
	JobType     JobType `json:"job_type" validate:"job_type"`
	IsRemote    bool    `json:"is_remote"`
	Notes       *string `json:"notes"`
	Source      string  `json:"source"`
}

// Normalize trims the required fields so whitespace-only values fail validation.
func (in *JobInput) Normalize() {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.JobURL = strings.TrimSpace(in.JobURL)
	in.Source = strings.TrimSpace(in.Source)
}

// Apply copies the editable fields of in onto j. Status and identity are untouched.
func (j *Job) Apply(in JobInput) {
	j.JobTitle = in.JobTitle
	j.CompanyName = in.CompanyName
	j.Location = in.Location
	j.JobURL = in.JobURL
	j.Description = in.Description
	j.Salary = in.Salary
	j.JobType = in.JobType
	j.IsRemote = in.IsRemote
	j.Notes = in.Notes
	if in.Source != "" {
		j.Source = in.Source
	}
}

type JobFilter struct {
	Statuses []JobStatus
	Source   string
}

// DeleteReport describes the outcome of a cascading job delete.
type DeleteReport struct {
	JobID               string   `json:"job_id"`
	AttachmentsRemoved  int      `json:"attachments_removed"`
	BlobsPendingCleanup []string `json:"blobs_pending_cleanup,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	PatchStatus(ctx context.Context, id string, status JobStatus) (*Job, error)
	// Delete removes the job and, atomically, its attachment metadata.
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, input JobInput) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	ReplaceJob(ctx context.Context, id string, input JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id string) (*DeleteReport, error)
}

type LifecycleUsecase interface {
	SetStatus(ctx context.Context, jobID string, status string) (*Job, error)
}
