package department

import (
	"context"

	"veridia/internal/common"
)

type Repository interface {
	Create(ctx context.Context, d Department) (*Department, error)
	Update(ctx context.Context, d Department) (*Department, error)
	GetByID(ctx context.Context, id common.UUID) (*Department, error)
	List(ctx context.Context) ([]Department, error)
	// Delete removes the department and, through the schema's cascade,
	// every position that belongs to it.
	Delete(ctx context.Context, id common.UUID) error
}
