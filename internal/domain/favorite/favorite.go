package favorite

import (
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
)

// Favorite is a reversible bookmark. Removal flips SoftDeleted instead of
// deleting the row, so a repeat toggle reactivates the same record.
type Favorite struct {
	ID          common.UUID `json:"id"`
	UserID      common.UUID `json:"user_id"`
	JobID       common.UUID `json:"job_id"`
	SoftDeleted bool        `json:"soft_deleted"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type WithJob struct {
	Favorite Favorite `json:"favorite"`
	Job      job.Job  `json:"job"`
}
