package app

import (
	"context"
	"fmt"
	"strings"

	"veridia/internal/common"
	"veridia/internal/domain/activity"
	"veridia/internal/domain/department"
	"veridia/internal/domain/position"
)

type DepartmentService struct {
	repo       department.Repository
	positions  position.Repository
	activities activity.Repository
}

func NewDepartmentService(repo department.Repository, positions position.Repository, activities activity.Repository) *DepartmentService {
	return &DepartmentService{repo: repo, positions: positions, activities: activities}
}

func (s *DepartmentService) Create(ctx context.Context, actor common.UUID, d department.Department) (*department.Department, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, common.NewValidationError("invalid department", map[string]string{"name": "name is required"})
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	_ = s.activities.Create(ctx, activity.Activity{
		Action:      activity.ActionDepartmentCreated,
		Description: fmt.Sprintf("Department %s created", created.Name),
		ChangedBy:   &actor,
	})
	return created, nil
}

// Update applies a partial edit. Description edits are always allowed; a
// rename is refused while any position still references the department.
func (s *DepartmentService) Update(ctx context.Context, id common.UUID, update department.Update) (*department.Department, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, common.NewValidationError("invalid department", map[string]string{"name": "name is required"})
		}
		if name != current.Name {
			referencing, err := s.positions.ListByDepartment(ctx, id)
			if err != nil {
				return nil, err
			}
			if len(referencing) > 0 {
				return nil, common.NewValidationError("invalid department", map[string]string{
					"name": "department cannot be renamed while positions reference it",
				})
			}
			current.Name = name
		}
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	return s.repo.Update(ctx, *current)
}

func (s *DepartmentService) List(ctx context.Context) ([]department.Department, error) {
	return s.repo.List(ctx)
}

// Delete removes the department together with its positions (schema-level
// cascade). Applications keep their denormalized department name.
func (s *DepartmentService) Delete(ctx context.Context, id common.UUID) error {
	return s.repo.Delete(ctx, id)
}
