package user

import (
	"context"

	"veridia/internal/common"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id common.UUID, update ProfileUpdate) (*User, error)
	ListAdminEmails(ctx context.Context) ([]string, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
