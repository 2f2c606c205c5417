package app

import (
	"context"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/applicant"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
)

type ApplicantService struct {
	repo applicant.Repository
	jobs job.Repository
}

func NewApplicantService(repo applicant.Repository, jobs job.Repository) *ApplicantService {
	return &ApplicantService{repo: repo, jobs: jobs}
}

func (s *ApplicantService) Apply(ctx context.Context, jobID, employeeID common.UUID) (*applicant.Applicant, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.Filled {
		return nil, common.NewError(common.CodeValidation, "job is already filled", nil)
	}
	if posting.LastDate.Before(today()) {
		return nil, common.NewError(common.CodeValidation, "job is past its last date", nil)
	}
	if _, err := s.repo.FindByJobAndUser(ctx, jobID, employeeID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	// The unique constraint still decides a concurrent duplicate; the loser
	// comes back from Create as the same conflict.
	return s.repo.Create(ctx, applicant.Applicant{
		UserID: employeeID,
		JobID:  jobID,
		Status: applicant.StatusPending,
	})
}

func (s *ApplicantService) ListByEmployee(ctx context.Context, employeeID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	return s.repo.ListByUser(ctx, employeeID, status)
}

// ListForJob returns the applicants of one job, but only for its owner. An
// absent job and a job owned by someone else are both reported as not found.
func (s *ApplicantService) ListForJob(ctx context.Context, jobID, ownerID common.UUID) ([]applicant.Applicant, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.OwnerID != ownerID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicantService) ListByOwner(ctx context.Context, ownerID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	return s.repo.ListByOwner(ctx, ownerID, status)
}

func (s *ApplicantService) Get(ctx context.Context, id, ownerID common.UUID) (*applicant.Applicant, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, app.JobID, ownerID); err != nil {
		return nil, err
	}
	return app, nil
}

type ResponseResult struct {
	Applicant   *applicant.Applicant
	AlreadySent bool
}

// SendResponse re-assigns the applicant status. Statuses form a flat enum:
// any status may move to any other; only setting the current status again is
// refused, reported as an already-sent no-op.
func (s *ApplicantService) SendResponse(ctx context.Context, applicantID, ownerID common.UUID, status applicant.Status, comment string) (*ResponseResult, error) {
	if !status.Known() {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be 0 (pending), 1 (accepted), or 2 (rejected)"})
	}
	app, err := s.repo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, app.JobID, ownerID); err != nil {
		return nil, err
	}
	if app.Status == status {
		return &ResponseResult{Applicant: app, AlreadySent: true}, nil
	}
	updated, err := s.repo.UpdateStatus(ctx, applicantID, status, comment)
	if err != nil {
		return nil, err
	}
	return &ResponseResult{Applicant: updated}, nil
}

func (s *ApplicantService) checkOwner(ctx context.Context, jobID, ownerID common.UUID) error {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if posting.OwnerID != ownerID {
		return common.NewError(common.CodeNotFound, "applicant not found", nil)
	}
	return nil
}
