package applicant

import (
	"context"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Repository interface {
	// Create surfaces a conflict when the (user, job) pair already exists,
	// including the case where a concurrent apply won the unique constraint.
	Create(ctx context.Context, app Applicant) (*Applicant, error)
	GetByID(ctx context.Context, id common.UUID) (*Applicant, error)
	FindByJobAndUser(ctx context.Context, jobID, userID common.UUID) (*Applicant, error)
	ListByUser(ctx context.Context, userID common.UUID, status *Status) ([]Applicant, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Applicant, error)
	ListByOwner(ctx context.Context, ownerID common.UUID, status *Status) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status, comment string) (*Applicant, error)
}
