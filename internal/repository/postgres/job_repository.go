package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
)

const jobColumns = `id, owner_id, title, description, location, job_type, category, last_date, company_name, filled, salary, tags, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, posting job.Job) (*job.Job, error) {
	posting.ID = common.NewUUID()
	now := time.Now().UTC()
	posting.CreatedAt = now
	posting.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, owner_id, title, description, location, job_type, category, last_date, company_name, filled, salary, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		posting.ID, posting.OwnerID, posting.Title, posting.Description, posting.Location, posting.Type, posting.Category, posting.LastDate, posting.CompanyName, posting.Filled, posting.Salary, pq.Array(posting.Tags), posting.CreatedAt, posting.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &posting, nil
}

func (r *JobRepository) Update(ctx context.Context, posting job.Job) (*job.Job, error) {
	posting.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, location = $3, job_type = $4, category = $5, last_date = $6, company_name = $7, salary = $8, tags = $9, updated_at = $10
		WHERE id = $11 AND owner_id = $12`,
		posting.Title, posting.Description, posting.Location, posting.Type, posting.Category, posting.LastDate, posting.CompanyName, posting.Salary, pq.Array(posting.Tags), posting.UpdatedAt, posting.ID, posting.OwnerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, posting.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	var posting job.Job
	if err := scanJobRow(row.Scan, &posting); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &posting, nil
}

func (r *JobRepository) ListUnfilled(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE NOT filled ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListTrending(ctx context.Context, month time.Time, limit int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE NOT filled AND date_trunc('month', created_at) = date_trunc('month', $1::timestamptz)
		ORDER BY created_at DESC LIMIT $2`, month.UTC(), limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list trending jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) Search(ctx context.Context, location, title string) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE location ILIKE '%' || $1 || '%' AND title ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC`, location, title)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owner jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) MarkFilled(ctx context.Context, id, ownerID common.UUID) error {
	// Zero matched rows means the job is absent or owned by someone else;
	// both are silent no-ops.
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET filled = TRUE, updated_at = $1 WHERE id = $2 AND owner_id = $3`, time.Now().UTC(), id, ownerID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark job filled", err)
	}
	return nil
}

func scanJobRow(scan func(dest ...any) error, posting *job.Job) error {
	return scan(&posting.ID, &posting.OwnerID, &posting.Title, &posting.Description, &posting.Location, &posting.Type, &posting.Category, &posting.LastDate, &posting.CompanyName, &posting.Filled, &posting.Salary, pq.Array(&posting.Tags), &posting.CreatedAt, &posting.UpdatedAt)
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var posting job.Job
		if err := scanJobRow(rows.Scan, &posting); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, posting)
	}
	return items, nil
}
