package user

import (
	"context"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, account User) (*User, error)
}
