package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-tracker-api/internal/domain"
)

const attachmentColumns = `id::text, job_id::text, file_name, file_type, mime_type, file_size, storage_key, created_at`

type attachmentRepo struct {
	db *pgxpool.Pool
}

func NewAttachmentRepository(db *pgxpool.Pool) domain.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(&a.ID, &a.JobID, &a.FileName, &a.FileType, &a.MIMEType, &a.FileSize, &a.StorageKey, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts metadata. A missing owner job surfaces as ErrNotFound.
func (r *attachmentRepo) Create(ctx context.Context, a *domain.Attachment) error {
	if !validID(a.JobID) {
		return domain.ErrNotFound
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO attachments (id, job_id, file_name, file_type, mime_type, file_size, storage_key)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		a.ID, a.JobID, a.FileName, a.FileType, a.MIMEType, a.FileSize, a.StorageKey,
	).Scan(&a.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
		return domain.ErrNotFound
	}
	return err
}

func (r *attachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return scanAttachment(r.db.QueryRow(ctx, `SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id))
}

func (r *attachmentRepo) ListByJobID(ctx context.Context, jobID string) ([]domain.Attachment, error) {
	out := make([]domain.Attachment, 0)
	if !validID(jobID) {
		return out, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE job_id = $1 ORDER BY created_at DESC, id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *attachmentRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attachmentRepo) StorageKeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attachments WHERE storage_key = $1)`, key).Scan(&exists)
	return exists, err
}
