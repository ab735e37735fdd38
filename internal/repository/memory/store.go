package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"job-tracker-api/internal/domain"
)

var (
	_ domain.JobRepository        = (*JobRepository)(nil)
	_ domain.AttachmentRepository = (*AttachmentRepository)(nil)
	_ domain.BlobStore            = (*BlobStore)(nil)
)

type jobRecord struct {
	job domain.Job
	seq int64
}

type attachmentRecord struct {
	att domain.Attachment
	seq int64
}

// Store holds jobs and attachment metadata under one lock so a job delete
// removes its attachments atomically. Safe for concurrent access.
type Store struct {
	mu sync.RWMutex

	jobs        map[string]*jobRecord
	attachments map[string]*attachmentRecord
	seq         int64
	now         func() time.Time
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		jobs:        make(map[string]*jobRecord),
		attachments: make(map[string]*attachmentRecord),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Jobs returns the job repository view of the store.
func (s *Store) Jobs() *JobRepository { return &JobRepository{s: s} }

// Attachments returns the attachment metadata view of the store.
func (s *Store) Attachments() *AttachmentRepository { return &AttachmentRepository{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// JobRepository is the domain.JobRepository view of a Store.
type JobRepository struct{ s *Store }

func (r *JobRepository) Create(_ context.Context, job *domain.Job) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := s.now()
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs[job.ID] = &jobRecord{job: *job, seq: s.nextSeq()}
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id string) (*domain.Job, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := rec.job
	return &cp, nil
}

// List returns matching jobs newest first.
func (r *JobRepository) List(_ context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*jobRecord, 0, len(s.jobs))
	for _, rec := range s.jobs {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, rec.job.Status) {
			continue
		}
		if filter.Source != "" && rec.job.Source != filter.Source {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]domain.Job, len(recs))
	for i, rec := range recs {
		out[i] = rec.job
	}
	return out, nil
}

func (r *JobRepository) Update(_ context.Context, job *domain.Job) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	job.CreatedAt = rec.job.CreatedAt
	job.Status = rec.job.Status
	job.UpdatedAt = s.now()
	rec.job = *job
	return nil
}

func (r *JobRepository) PatchStatus(_ context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.job.Status = status
	rec.job.UpdatedAt = s.now()
	cp := rec.job
	return &cp, nil
}

// Delete removes the job and its attachment metadata in one critical section.
func (r *JobRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.jobs, id)
	for aid, rec := range s.attachments {
		if rec.att.JobID == id {
			delete(s.attachments, aid)
		}
	}
	return nil
}

// AttachmentRepository is the domain.AttachmentRepository view of a Store.
type AttachmentRepository struct{ s *Store }

// Create fails with ErrNotFound when the owning job does not exist.
func (r *AttachmentRepository) Create(_ context.Context, a *domain.Attachment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[a.JobID]; !ok {
		return domain.ErrNotFound
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now()
	s.attachments[a.ID] = &attachmentRecord{att: *a, seq: s.nextSeq()}
	return nil
}

func (r *AttachmentRepository) GetByID(_ context.Context, id string) (*domain.Attachment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.attachments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := rec.att
	return &cp, nil
}

func (r *AttachmentRepository) ListByJobID(_ context.Context, jobID string) ([]domain.Attachment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []*attachmentRecord
	for _, rec := range s.attachments {
		if rec.att.JobID == jobID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]domain.Attachment, len(recs))
	for i, rec := range recs {
		out[i] = rec.att
	}
	return out, nil
}

func (r *AttachmentRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attachments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.attachments, id)
	return nil
}

func (r *AttachmentRepository) StorageKeyExists(_ context.Context, key string) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.attachments {
		if rec.att.StorageKey == key {
			return true, nil
		}
	}
	return false, nil
}

// BlobStore keeps attachment content in memory.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

func (b *BlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (b *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *BlobStore) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blobs, key)
	return nil
}

func (b *BlobStore) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
