package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/applicant"
)

const applicantColumns = `id, user_id, job_id, status, comment, created_at, updated_at`

type ApplicantRepository struct {
	db *sql.DB
}

func NewApplicantRepository(db *sql.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

func (r *ApplicantRepository) Create(ctx context.Context, app applicant.Applicant) (*applicant.Applicant, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applicants (id, user_id, job_id, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.UserID, app.JobID, app.Status, app.Comment, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		// The unique constraint catches the race where two concurrent applies
		// both passed the service pre-check.
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create applicant", err)
	}
	return &app, nil
}

func (r *ApplicantRepository) GetByID(ctx context.Context, id common.UUID) (*applicant.Applicant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE id = $1`, id)
	var app applicant.Applicant
	if err := row.Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.Comment, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "applicant not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load applicant", err)
	}
	return &app, nil
}

func (r *ApplicantRepository) FindByJobAndUser(ctx context.Context, jobID, userID common.UUID) (*applicant.Applicant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE job_id = $1 AND user_id = $2`, jobID, userID)
	var app applicant.Applicant
	if err := row.Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.Comment, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "applicant not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load applicant", err)
	}
	return &app, nil
}

func (r *ApplicantRepository) ListByUser(ctx context.Context, userID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	var rows *sql.Rows
	var err error
	if status == nil {
		rows, err = r.db.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`, userID, *status)
	}
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return collectApplicants(rows)
}

func (r *ApplicantRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]applicant.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applicants", err)
	}
	return collectApplicants(rows)
}

func (r *ApplicantRepository) ListByOwner(ctx context.Context, ownerID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	query := `SELECT a.id, a.user_id, a.job_id, a.status, a.comment, a.created_at, a.updated_at
		FROM applicants a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.owner_id = $1`
	args := []any{ownerID}
	if status != nil {
		query += ` AND a.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY a.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owner applicants", err)
	}
	return collectApplicants(rows)
}

func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id common.UUID, status applicant.Status, comment string) (*applicant.Applicant, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applicants SET status = $1, comment = $2, updated_at = $3 WHERE id = $4`, status, comment, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update applicant", err)
	}
	return r.GetByID(ctx, id)
}

func collectApplicants(rows *sql.Rows) ([]applicant.Applicant, error) {
	defer rows.Close()
	var items []applicant.Applicant
	for rows.Next() {
		var app applicant.Applicant
		if err := rows.Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.Comment, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		items = append(items, app)
	}
	return items, nil
}
