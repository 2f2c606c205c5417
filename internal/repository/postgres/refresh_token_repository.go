package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/auth"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, token auth.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO refresh_tokens (id, user_id, token, role, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		token.ID, token.UserID, token.Token, token.Role, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store refresh token", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, token, role, expires_at, created_at, revoked_at FROM refresh_tokens WHERE token = $1`, token)
	var stored auth.RefreshToken
	if err := row.Scan(&stored.ID, &stored.UserID, &stored.Token, &stored.Role, &stored.ExpiresAt, &stored.CreatedAt, &stored.RevokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "refresh token not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load refresh token", err)
	}
	return &stored, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string, revokedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked_at = $1 WHERE token = $2 AND revoked_at IS NULL`, revokedAt, token)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke refresh token", err)
	}
	return nil
}
