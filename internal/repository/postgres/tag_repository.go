package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/tag"
)

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]tag.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list tags", err)
	}
	defer rows.Close()
	var items []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan tag", err)
		}
		items = append(items, t)
	}
	return items, nil
}

func (r *TagRepository) Missing(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM tags WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to check tags", err)
	}
	defer rows.Close()
	known := make(map[string]struct{}, len(names))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan tag", err)
		}
		known[name] = struct{}{}
	}
	var missing []string
	for _, name := range names {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
