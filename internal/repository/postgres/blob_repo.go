package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"job-tracker-api/internal/domain"
)

// blobRepo keeps attachment content in the attachment_blobs table.
type blobRepo struct {
	db *pgxpool.Pool
}

func NewBlobStore(db *pgxpool.Pool) domain.BlobStore {
	return &blobRepo{db: db}
}

func (r *blobRepo) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO attachment_blobs (storage_key, content_type, data) VALUES ($1, $2, $3)
		 ON CONFLICT (storage_key) DO UPDATE SET content_type = EXCLUDED.content_type, data = EXCLUDED.data`,
		key, contentType, data)
	return err
}

func (r *blobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM attachment_blobs WHERE storage_key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return data, err
}

func (r *blobRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM attachment_blobs WHERE storage_key = $1`, key)
	return err
}

func (r *blobRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT storage_key FROM attachment_blobs ORDER BY storage_key`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
