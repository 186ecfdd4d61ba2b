package activity

import "context"

type Repository interface {
	Create(ctx context.Context, a Activity) error
	ListRecent(ctx context.Context, limit int) ([]Activity, error)
}
