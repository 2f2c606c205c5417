package auth

import (
	"context"
	"time"
)

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string, revokedAt time.Time) error
}
