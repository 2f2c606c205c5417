package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/favorite"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle is a single upsert so two concurrent toggles for the same pair
// serialize on the (user_id, job_id) unique constraint instead of racing a
// read-then-write.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, jobID common.UUID) (bool, error) {
	var softDeleted bool
	err := r.db.QueryRowContext(ctx, `INSERT INTO favorites (id, user_id, job_id, soft_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT favorites_user_job_key
		DO UPDATE SET soft_deleted = NOT favorites.soft_deleted, updated_at = NOW()
		RETURNING soft_deleted`,
		common.NewUUID(), userID, jobID).Scan(&softDeleted)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to toggle favorite", err)
	}
	return !softDeleted, nil
}

func (r *FavoriteRepository) ListActiveByUser(ctx context.Context, userID common.UUID) ([]favorite.WithJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT f.id, f.user_id, f.job_id, f.soft_deleted, f.created_at, f.updated_at,
			j.id, j.owner_id, j.title, j.description, j.location, j.job_type, j.category, j.last_date, j.company_name, j.filled, j.salary, j.tags, j.created_at, j.updated_at
		FROM favorites f
		JOIN jobs j ON j.id = f.job_id
		WHERE f.user_id = $1 AND NOT f.soft_deleted
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list favorites", err)
	}
	defer rows.Close()
	var items []favorite.WithJob
	for rows.Next() {
		var item favorite.WithJob
		if err := rows.Scan(
			&item.Favorite.ID, &item.Favorite.UserID, &item.Favorite.JobID, &item.Favorite.SoftDeleted, &item.Favorite.CreatedAt, &item.Favorite.UpdatedAt,
			&item.Job.ID, &item.Job.OwnerID, &item.Job.Title, &item.Job.Description, &item.Job.Location, &item.Job.Type, &item.Job.Category, &item.Job.LastDate, &item.Job.CompanyName, &item.Job.Filled, &item.Job.Salary, pq.Array(&item.Job.Tags), &item.Job.CreatedAt, &item.Job.UpdatedAt,
		); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan favorite", err)
		}
		items = append(items, item)
	}
	return items, nil
}
