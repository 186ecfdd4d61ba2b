package position

import (
	"context"

	"veridia/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Position) (*Position, error)
	Update(ctx context.Context, p Position) (*Position, error)
	GetByID(ctx context.Context, id common.UUID) (*Position, error)
	ListActive(ctx context.Context) ([]Position, error)
	ListByDepartment(ctx context.Context, departmentID common.UUID) ([]Position, error)
	CountActive(ctx context.Context) (int, error)
	Delete(ctx context.Context, id common.UUID) error
}
