package favorite

import (
	"context"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Repository interface {
	// Toggle atomically creates the bookmark or flips its soft-delete flag and
	// returns whether it is active afterwards.
	Toggle(ctx context.Context, userID, jobID common.UUID) (bool, error)
	ListActiveByUser(ctx context.Context, userID common.UUID) ([]WithJob, error)
}
