package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/repository/memory"
	"job-tracker-api/internal/usecase"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/security/antivirus"
)

const mib = 1024 * 1024

func pdfOfSize(n int) []byte {
	b := make([]byte, n)
	copy(b, "%PDF-1.4\n")
	return b
}

type attachmentFixture struct {
	store *memory.Store
	blobs *memory.BlobStore
	uc    domain.AttachmentUsecase
	job   *domain.Job
}

func newAttachmentFixture(t *testing.T, scanner antivirus.Scanner) attachmentFixture {
	t.Helper()
	store := memory.New()
	blobs := memory.NewBlobStore()
	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1", Status: domain.StatusNew}
	require.NoError(t, store.Jobs().Create(context.Background(), job))
	return attachmentFixture{
		store: store,
		blobs: blobs,
		uc:    usecase.NewAttachmentUsecase(store.Jobs(), store.Attachments(), blobs, scanner, 0),
		job:   job,
	}
}

func (f attachmentFixture) blobCount(t *testing.T) int {
	keys, err := f.blobs.Keys(context.Background())
	require.NoError(t, err)
	return len(keys)
}

func TestUpload_SizeBoundary(t *testing.T) {
	ctx := context.Background()
	f := newAttachmentFixture(t, nil)

	att, err := f.uc.Upload(ctx, domain.UploadInput{
		JobID: f.job.ID, FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10 * mib),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10*mib), att.FileSize)
	assert.Equal(t, "application/pdf", att.MIMEType)

	_, err = f.uc.Upload(ctx, domain.UploadInput{
		JobID: f.job.ID, FileName: "big.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10*mib + 1),
	})
	assert.True(t, apperror.IsValidation(err))

	list, err := f.uc.List(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, f.blobCount(t))
}

func TestUpload_ValidationBeforeStore(t *testing.T) {
	cases := []struct {
		name  string
		input domain.UploadInput
	}{
		{"bad file type", domain.UploadInput{FileName: "cv.pdf", FileType: "photo", Data: pdfOfSize(10)}},
		{"empty file type", domain.UploadInput{FileName: "cv.pdf", Data: pdfOfSize(10)}},
		{"no name", domain.UploadInput{FileName: "  ", FileType: domain.FileTypeResume, Data: pdfOfSize(10)}},
		{"wrong format", domain.UploadInput{FileName: "cv.exe", FileType: domain.FileTypeResume, Data: pdfOfSize(10)}},
		{"spoofed content", domain.UploadInput{FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: []byte("MZ\x90\x00binary")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jobs := new(MockJobRepo)
			atts := new(MockAttachmentRepo)
			blobs := memory.NewBlobStore()
			uc := usecase.NewAttachmentUsecase(jobs, atts, blobs, nil, 0)

			tc.input.JobID = "job-1"
			_, err := uc.Upload(context.Background(), tc.input)
			assert.True(t, apperror.IsValidation(err), "%v", err)

			jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			atts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			keys, _ := blobs.Keys(context.Background())
			assert.Empty(t, keys)
		})
	}
}

func TestUpload_FileTypeMessage(t *testing.T) {
	uc := usecase.NewAttachmentUsecase(new(MockJobRepo), new(MockAttachmentRepo), memory.NewBlobStore(), nil, 0)
	_, err := uc.Upload(context.Background(), domain.UploadInput{
		JobID: "job-1", FileName: "cv.pdf", FileType: "photo", Data: pdfOfSize(10),
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, []string{"File type: must be one of: resume, cover_letter"}, appErr.Details)
}

func TestUpload_UnknownJob(t *testing.T) {
	f := newAttachmentFixture(t, nil)
	_, err := f.uc.Upload(context.Background(), domain.UploadInput{
		JobID: "missing", FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10),
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Zero(t, f.blobCount(t))
}

func TestUpload_MetadataFailureRemovesBlob(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	jobs.On("GetByID", mock.Anything, "job-1").Return(&domain.Job{ID: "job-1"}, nil)
	atts := new(MockAttachmentRepo)
	atts.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	blobs := memory.NewBlobStore()
	uc := usecase.NewAttachmentUsecase(jobs, atts, blobs, nil, 0)

	_, err := uc.Upload(ctx, domain.UploadInput{JobID: "job-1", FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10)})
	assert.True(t, apperror.Is(err, apperror.KindUpstream))

	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

type stubScanner struct {
	result antivirus.ScanResult
}

func (s stubScanner) Scan(context.Context, string, []byte) antivirus.ScanResult { return s.result }
func (s stubScanner) Name() string { return "stub" }
func (s stubScanner) Available(context.Context) bool { return true }

func TestUpload_Scanner(t *testing.T) {
	input := func(jobID string) domain.UploadInput {
		return domain.UploadInput{JobID: jobID, FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10)}
	}

	t.Run("infected", func(t *testing.T) {
		f := newAttachmentFixture(t, stubScanner{antivirus.ScanResult{Infected: true, ThreatName: "Eicar"}})
		_, err := f.uc.Upload(context.Background(), input(f.job.ID))
		assert.True(t, apperror.IsValidation(err))
		assert.Zero(t, f.blobCount(t))
	})

	t.Run("scanner down", func(t *testing.T) {
		f := newAttachmentFixture(t, stubScanner{antivirus.ScanResult{Error: errors.New("clamd unreachable")}})
		_, err := f.uc.Upload(context.Background(), input(f.job.ID))
		assert.True(t, apperror.Is(err, apperror.KindUpstream))
		assert.Zero(t, f.blobCount(t))
	})
}

func TestAttachment_ListGetDownloadDelete(t *testing.T) {
	ctx := context.Background()
	f := newAttachmentFixture(t, nil)

	empty, err := f.uc.List(ctx, f.job.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.uc.List(ctx, "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	data := pdfOfSize(256)
	att, err := f.uc.Upload(ctx, domain.UploadInput{
		JobID: f.job.ID, FileName: `C:\Users\me\My Resume.pdf`, FileType: domain.FileTypeCoverLetter, Data: data,
	})
	require.NoError(t, err)
	assert.Equal(t, "My Resume.pdf", att.FileName)
	assert.Equal(t, domain.FileTypeCoverLetter, att.FileType)

	got, err := f.uc.Get(ctx, f.job.ID, att.ID)
	require.NoError(t, err)
	assert.Equal(t, att.ID, got.ID)

	dl, err := f.uc.Download(ctx, f.job.ID, att.ID)
	require.NoError(t, err)
	assert.Equal(t, data, dl.Data)
	assert.Equal(t, "application/pdf", dl.MIMEType)
	assert.Equal(t, "My Resume.pdf", dl.Attachment.FileName)

	other := &domain.Job{JobTitle: "Other", JobURL: "https://x/2"}
	require.NoError(t, f.store.Jobs().Create(ctx, other))
	_, err = f.uc.Download(ctx, other.ID, att.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.uc.Get(ctx, f.job.ID, "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, f.uc.Delete(ctx, att.ID))
	assert.True(t, apperror.Is(f.uc.Delete(ctx, att.ID), apperror.KindNotFound))
	assert.Zero(t, f.blobCount(t))

	list, err := f.uc.List(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAttachmentDelete_BlobFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	blobs := memory.NewBlobStore()
	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1"}
	require.NoError(t, store.Jobs().Create(ctx, job))

	att, err := usecase.NewAttachmentUsecase(store.Jobs(), store.Attachments(), blobs, nil, 0).
		Upload(ctx, domain.UploadInput{JobID: job.ID, FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(10)})
	require.NoError(t, err)

	uc := usecase.NewAttachmentUsecase(store.Jobs(), store.Attachments(), failingBlobs{blobs}, nil, 0)
	require.NoError(t, uc.Delete(ctx, att.ID))

	_, err = uc.Get(ctx, job.ID, att.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpload_CustomMaxSize(t *testing.T) {
	store := memory.New()
	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1"}
	require.NoError(t, store.Jobs().Create(context.Background(), job))
	uc := usecase.NewAttachmentUsecase(store.Jobs(), store.Attachments(), memory.NewBlobStore(), nil, 1024)

	_, err := uc.Upload(context.Background(), domain.UploadInput{JobID: job.ID, FileName: "cv.pdf", FileType: domain.FileTypeResume, Data: pdfOfSize(1025)})
	assert.True(t, apperror.IsValidation(err))
}
