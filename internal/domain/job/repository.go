package job

import (
	"context"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Job) (*Job, error)
	// Update writes only when the job belongs to posting.OwnerID and reports
	// not-found otherwise, without distinguishing an absent row.
	Update(ctx context.Context, posting Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListUnfilled(ctx context.Context, limit, offset int) ([]Job, error)
	ListTrending(ctx context.Context, month time.Time, limit int) ([]Job, error)
	Search(ctx context.Context, location, title string) ([]Job, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Job, error)
	// MarkFilled is a no-op when (id, ownerID) matches no row.
	MarkFilled(ctx context.Context, id, ownerID common.UUID) error
}
