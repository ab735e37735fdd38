package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/logger"
	"job-tracker-api/pkg/security"
	"job-tracker-api/pkg/security/antivirus"
	"job-tracker-api/pkg/validation"
)

// DefaultMaxAttachmentSize is the largest accepted attachment: 10 MiB.
const DefaultMaxAttachmentSize int64 = 10 * 1024 * 1024

type attachmentUsecase struct {
	jobRepo        domain.JobRepository
	attachmentRepo domain.AttachmentRepository
	blobs          domain.BlobStore
	scanner        antivirus.Scanner
	validate       *validator.Validate
	maxSize        int64
}

// NewAttachmentUsecase wires the attachment controller. A nil scanner skips
// malware scanning; a non-positive maxSize uses DefaultMaxAttachmentSize.
func NewAttachmentUsecase(
	jobRepo domain.JobRepository,
	attachmentRepo domain.AttachmentRepository,
	blobs domain.BlobStore,
	scanner antivirus.Scanner,
	maxSize int64,
) domain.AttachmentUsecase {
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxAttachmentSize
	}
	return &attachmentUsecase{
		jobRepo:        jobRepo,
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		scanner:        scanner,
		validate:       validation.New(),
		maxSize:        maxSize,
	}
}

func (u *attachmentUsecase) List(ctx context.Context, jobID string) ([]domain.Attachment, error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, storeError(err, "Job not found")
	}
	list, err := u.attachmentRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, storeError(err, "Job not found")
	}
	if list == nil {
		list = []domain.Attachment{}
	}
	return list, nil
}

// sanitizeFileName keeps the base name and drops control characters.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Upload validates everything that can be checked locally before any store
// call, then writes the blob and the metadata. A failed metadata write
// removes the blob again.
func (u *attachmentUsecase) Upload(ctx context.Context, input domain.UploadInput) (*domain.Attachment, error) {
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}
	size := int64(len(input.Data))
	if size > u.maxSize {
		return nil, apperror.Validation(fmt.Sprintf("File exceeds maximum size of %d bytes", u.maxSize))
	}
	name := sanitizeFileName(input.FileName)
	if name == "" {
		return nil, apperror.Validation("File name is required")
	}
	check := security.ValidateDocument(name, input.Data)
	if !check.Valid {
		return nil, apperror.Validation("Unsupported file: "+check.Error, "Allowed formats: PDF, DOC, DOCX")
	}

	if _, err := u.jobRepo.GetByID(ctx, input.JobID); err != nil {
		return nil, storeError(err, "Job not found")
	}

	scan := u.scanner.Scan(ctx, name, input.Data)
	if scan.Error != nil {
		return nil, apperror.Upstream("Malware scan unavailable", scan.Error)
	}
	if scan.Infected {
		logger.Log.Warn("infected upload rejected",
			"job_id", input.JobID, "scanner", scan.ScannerName, "threat", scan.ThreatName)
		return nil, apperror.Validation("File rejected: malware detected")
	}

	key := domain.NewStorageKey(input.JobID, check.Extension)
	if err := u.blobs.Put(ctx, key, input.Data, check.MIMEType); err != nil {
		return nil, apperror.Upstream("Attachment storage unavailable", err)
	}

	att := &domain.Attachment{
		JobID:      input.JobID,
		FileName:   name,
		FileType:   input.FileType,
		MIMEType:   check.MIMEType,
		FileSize:   size,
		StorageKey: key,
	}
	if err := u.attachmentRepo.Create(ctx, att); err != nil {
		if delErr := u.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			logger.Log.Error("failed to remove blob after metadata error", "storage_key", key, "error", delErr)
		}
		return nil, storeError(err, "Job not found")
	}
	return att, nil
}

// Get returns metadata of an attachment owned by jobID.
func (u *attachmentUsecase) Get(ctx context.Context, jobID, attachmentID string) (*domain.Attachment, error) {
	att, err := u.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, storeError(err, "Attachment not found")
	}
	if att.JobID != jobID {
		return nil, notFound("Attachment not found")
	}
	return att, nil
}

func (u *attachmentUsecase) Download(ctx context.Context, jobID, attachmentID string) (*domain.Download, error) {
	att, err := u.Get(ctx, jobID, attachmentID)
	if err != nil {
		return nil, err
	}
	data, err := u.blobs.Get(ctx, att.StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound("Attachment content not found")
		}
		return nil, apperror.Upstream("Attachment storage unavailable", err)
	}

	mimeType := att.MIMEType
	if mimeType == "" {
		mimeType = security.MIMEForFilename(att.FileName, data)
	}
	return &domain.Download{Attachment: att, Data: data, MIMEType: mimeType}, nil
}

// Delete removes metadata first; a failed blob delete is left to the sweeper.
func (u *attachmentUsecase) Delete(ctx context.Context, attachmentID string) error {
	att, err := u.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return storeError(err, "Attachment not found")
	}
	if err := u.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return storeError(err, "Attachment not found")
	}
	if err := u.blobs.Delete(ctx, att.StorageKey); err != nil {
		logger.Log.Warn("attachment blob cleanup deferred", "attachment_id", attachmentID, "error", err)
	}
	return nil
}
