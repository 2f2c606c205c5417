package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, role, gender, first_name, last_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.Email, account.PasswordHash, account.Role, account.Gender, account.FirstName, account.LastName, account.IsActive, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "user with this email already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, gender, first_name, last_name, is_active, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, gender, first_name, last_name, is_active, created_at, updated_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, account user.User) (*user.User, error) {
	account.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE users SET gender = $1, first_name = $2, last_name = $3, is_active = $4, updated_at = $5 WHERE id = $6`,
		account.Gender, account.FirstName, account.LastName, account.IsActive, account.UpdatedAt, account.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, account.ID)
}

func scanUser(row *sql.Row) (*user.User, error) {
	var account user.User
	if err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &account.Role, &account.Gender, &account.FirstName, &account.LastName, &account.IsActive, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &account, nil
}
