package app

import (
	"context"

	"veridia/internal/common"
	"veridia/internal/domain/user"
)

type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id common.UUID, update user.ProfileUpdate) (*user.User, error) {
	return s.users.UpdateProfile(ctx, id, update)
}
