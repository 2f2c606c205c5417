package user

import (
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
)

// User is the account entity. Role is assigned at registration and never
// changes afterwards.
type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Gender       string      `json:"gender,omitempty"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
