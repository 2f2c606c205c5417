package tag

import "context"

type Repository interface {
	List(ctx context.Context) ([]Tag, error)
	// Missing returns the subset of names that are not in the catalog.
	Missing(ctx context.Context, names []string) ([]string, error)
}
