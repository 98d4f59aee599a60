package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobtion/pkg/tracker"
)

// JobRepository stores tracked job applications.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_records (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	requirements TEXT[] NOT NULL DEFAULT '{}',
	salary TEXT NOT NULL DEFAULT '',
	due_date TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	type_color TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_records_updated ON job_records(updated_at DESC);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, rec tracker.JobRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_records (id, title, link, company, location, description, requirements, salary, due_date, job_type, type_color, status, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, rec.ID, rec.Title, rec.Link, rec.Company, rec.Location, rec.Description, rec.Requirements,
		rec.Salary, rec.DueDate, rec.Type, rec.TypeColor, string(rec.Status), rec.Notes,
		rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *JobRepository) Update(ctx context.Context, rec tracker.JobRecord) error {
	ct, err := r.pool.Exec(ctx, `
UPDATE job_records
SET title = $2, link = $3, company = $4, location = $5, description = $6, requirements = $7,
    salary = $8, due_date = $9, job_type = $10, type_color = $11, status = $12, notes = $13,
    updated_at = $14
WHERE id = $1
`, rec.ID, rec.Title, rec.Link, rec.Company, rec.Location, rec.Description, rec.Requirements,
		rec.Salary, rec.DueDate, rec.Type, rec.TypeColor, string(rec.Status), rec.Notes,
		rec.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return tracker.ErrNotFound
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (tracker.JobRecord, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, link, company, location, description, requirements, salary, due_date, job_type, type_color, status, notes, created_at, updated_at
FROM job_records WHERE id = $1
`, id)
	return scanJobRecord(row)
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]tracker.JobRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, link, company, location, description, requirements, salary, due_date, job_type, type_color, status, notes, created_at, updated_at
FROM job_records ORDER BY updated_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]tracker.JobRecord, 0)
	for rows.Next() {
		rec, err := scanJobRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM job_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return tracker.ErrNotFound
	}
	return nil
}

func scanJobRecord(row pgx.Row) (tracker.JobRecord, error) {
	var rec tracker.JobRecord
	var status string
	var created, updated time.Time
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Link, &rec.Company, &rec.Location, &rec.Description,
		&rec.Requirements, &rec.Salary, &rec.DueDate, &rec.Type, &rec.TypeColor, &status, &rec.Notes,
		&created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracker.JobRecord{}, tracker.ErrNotFound
		}
		return tracker.JobRecord{}, err
	}
	rec.Status = tracker.Status(status)
	rec.CreatedAt = created.UTC()
	rec.UpdatedAt = updated.UTC()
	if rec.Requirements == nil {
		rec.Requirements = []string{}
	}
	return rec, nil
}
