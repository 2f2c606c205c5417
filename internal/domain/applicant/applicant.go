package applicant

import (
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Status int

const (
	StatusPending Status = iota
	StatusAccepted
	StatusRejected
)

func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Applicant links one employee to one job. The (UserID, JobID) pair is unique;
// both references are immutable after creation.
type Applicant struct {
	ID        common.UUID `json:"id"`
	UserID    common.UUID `json:"user_id"`
	JobID     common.UUID `json:"job_id"`
	Status    Status      `json:"status"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
