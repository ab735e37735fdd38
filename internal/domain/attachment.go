package domain

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileType is the role of an attachment within an application.
type FileType string

const (
	FileTypeResume      FileType = "resume"
	FileTypeCoverLetter FileType = "cover_letter"
)

func (t FileType) Valid() bool {
	return t == FileTypeResume || t == FileTypeCoverLetter
}

// Attachment is a resume or cover letter owned by exactly one job.
type Attachment struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	FileName   string    `json:"file_name"`
	FileType   FileType  `json:"file_type"`
	MIMEType   string    `json:"mime_type"`
	FileSize   int64     `json:"file_size"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewStorageKey returns a fresh blob key for an attachment of jobID:
// "<job uuid>/<uuid><ext>".
func NewStorageKey(jobID, ext string) string {
	return jobID + "/" + uuid.NewString() + ext
}

// IsStorageKey reports whether key has the shape NewStorageKey produces.
// Anything else in a blob store belongs to someone else.
func IsStorageKey(key string) bool {
	jobID, name, ok := strings.Cut(key, "/")
	if !ok || !isCanonicalUUID(jobID) {
		return false
	}
	return isCanonicalUUID(strings.TrimSuffix(name, path.Ext(name)))
}

func isCanonicalUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

// UploadInput carries a file to attach to a job.
type UploadInput struct {
	JobID    string
	FileName string
	FileType FileType `validate:"file_type"`
	Data     []byte
}

// Download is a materialized attachment ready to be served.
type Download struct {
	Attachment *Attachment
	Data       []byte
	MIMEType   string
}

// AttachmentRepository stores attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id string) (*Attachment, error)
	ListByJobID(ctx context.Context, jobID string) ([]Attachment, error)
	Delete(ctx context.Context, id string) error
	StorageKeyExists(ctx context.Context, key string) (bool, error)
}

// BlobStore stores attachment content by storage key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

type AttachmentUsecase interface {
	List(ctx context.Context, jobID string) ([]Attachment, error)
	Upload(ctx context.Context, input UploadInput) (*Attachment, error)
	Get(ctx context.Context, jobID, attachmentID string) (*Attachment, error)
	Download(ctx context.Context, jobID, attachmentID string) (*Download, error)
	Delete(ctx context.Context, attachmentID string) error
}
