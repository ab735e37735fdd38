package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"job-tracker-api/internal/domain"
)

const jobColumns = `id::text, job_title, company_name, location, job_url, description, salary,
	job_type, is_remote, notes, source, status, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.JobTitle, &job.CompanyName, &job.Location, &job.JobURL, &job.Description, &job.Salary,
		&job.JobType, &job.IsRemote, &job.Notes, &job.Source, &job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// validID reports whether id can address a row; malformed ids are simply not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	query := `INSERT INTO jobs (id, job_title, company_name, location, job_url, description, salary,
	              job_type, is_remote, notes, source, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.ID, job.JobTitle, job.CompanyName, job.Location, job.JobURL, job.Description, job.Salary,
		job.JobType, job.IsRemote, job.Notes, job.Source, job.Status,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		where = append(where, fmt.Sprintf("source = $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	if !validID(job.ID) {
		return domain.ErrNotFound
	}
	query := `UPDATE jobs SET job_title = $2, company_name = $3, location = $4, job_url = $5,
	              description = $6, salary = $7, job_type = $8, is_remote = $9, notes = $10,
	              source = $11, updated_at = now()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		job.ID, job.JobTitle, job.CompanyName, job.Location, job.JobURL,
		job.Description, job.Salary, job.JobType, job.IsRemote, job.Notes, job.Source,
	).Scan(&job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *jobRepo) PatchStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + jobColumns
	return scanJob(r.db.QueryRow(ctx, query, id, status))
}

// Delete relies on ON DELETE CASCADE to drop attachment metadata in the same statement.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
