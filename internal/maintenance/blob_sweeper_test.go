package maintenance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/repository/memory"
)

func TestBlobSweeper_TwoPass(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	blobs := memory.NewBlobStore()

	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1"}
	require.NoError(t, store.Jobs().Create(ctx, job))
	live := domain.NewStorageKey(job.ID, ".pdf")
	orphan := domain.NewStorageKey(job.ID, ".pdf")
	require.NoError(t, store.Attachments().Create(ctx, &domain.Attachment{JobID: job.ID, FileName: "cv.pdf", StorageKey: live}))
	require.NoError(t, blobs.Put(ctx, live, []byte("a"), "application/pdf"))
	require.NoError(t, blobs.Put(ctx, orphan, []byte("b"), "application/pdf"))

	s := NewBlobSweeper(blobs, store.Attachments(), "@every 1h")

	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{live}, keys)
}

func TestBlobSweeper_AfterJobDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	blobs := memory.NewBlobStore()

	job := &domain.Job{JobTitle: "SWE", JobURL: "https://x/1"}
	require.NoError(t, store.Jobs().Create(ctx, job))
	key := domain.NewStorageKey(job.ID, ".docx")
	require.NoError(t, store.Attachments().Create(ctx, &domain.Attachment{JobID: job.ID, StorageKey: key}))
	require.NoError(t, blobs.Put(ctx, key, []byte("a"), "application/pdf"))

	s := NewBlobSweeper(blobs, store.Attachments(), "@every 1h")
	_, err := s.Sweep(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Jobs().Delete(ctx, job.ID))
	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed, "first sighting only marks the key")

	removed, err = s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestBlobSweeper_LeavesForeignObjects(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()
	jobID := uuid.NewString()

	foreign := []string{
		"backup/db.dump",
		"attachments-old/" + uuid.NewString() + ".pdf",
		jobID + "/notes.txt",
		jobID + "/" + uuid.NewString() + "/nested.pdf",
		uuid.NewString() + ".pdf",
	}
	for _, k := range foreign {
		require.NoError(t, blobs.Put(ctx, k, []byte("x"), "application/octet-stream"))
	}
	orphan := domain.NewStorageKey(jobID, ".pdf")
	require.NoError(t, blobs.Put(ctx, orphan, []byte("y"), "application/pdf"))

	s := NewBlobSweeper(blobs, memory.New().Attachments(), "@every 1h")
	for i := 0; i < 3; i++ {
		_, err := s.Sweep(ctx)
		require.NoError(t, err)
	}

	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, foreign, keys)
}

func TestBlobSweeper_StartRejectsBadSpec(t *testing.T) {
	s := NewBlobSweeper(memory.NewBlobStore(), memory.New().Attachments(), "not a spec")
	assert.Error(t, s.Start(context.Background()))
}
