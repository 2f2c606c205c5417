package job

import (
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

// MaxTags caps how many tags a single posting may carry.
const MaxTags = 7

type Job struct {
	ID          common.UUID `json:"id"`
	OwnerID     common.UUID `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Type        Type        `json:"type"`
	Category    string      `json:"category"`
	LastDate    time.Time   `json:"last_date"`
	CompanyName string      `json:"company_name"`
	Filled      bool        `json:"filled"`
	Salary      *int64      `json:"salary,omitempty"`
	Tags        []string    `json:"tags"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
