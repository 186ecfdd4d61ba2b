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

type PositionService struct {
	repo        position.Repository
	departments department.Repository
	activities  activity.Repository
}

func NewPositionService(repo position.Repository, departments department.Repository, activities activity.Repository) *PositionService {
	return &PositionService{repo: repo, departments: departments, activities: activities}
}

func (s *PositionService) Create(ctx context.Context, actor common.UUID, p position.Position) (*position.Position, error) {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if p.DepartmentID == "" {
		fields["department_id"] = "department_id is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid position", fields)
	}
	dept, err := s.departments.GetByID(ctx, p.DepartmentID)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	_ = s.activities.Create(ctx, activity.Activity{
		Action:      activity.ActionPositionCreated,
		Description: fmt.Sprintf("Position %s opened in %s", created.Title, dept.Name),
		ChangedBy:   &actor,
	})
	return created, nil
}

// Update applies a partial edit: fields absent from the request keep their
// stored values. Department ownership is fixed at creation.
func (s *PositionService) Update(ctx context.Context, id common.UUID, update position.Update) (*position.Position, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, common.NewValidationError("invalid position", map[string]string{"title": "title is required"})
		}
		current.Title = title
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	if update.Requirements != nil {
		current.Requirements = update.Requirements
	}
	if update.IsActive != nil {
		current.IsActive = *update.IsActive
	}
	return s.repo.Update(ctx, *current)
}

// ListOpen returns the positions visible to applicants.
func (s *PositionService) ListOpen(ctx context.Context) ([]position.Position, error) {
	return s.repo.ListActive(ctx)
}

func (s *PositionService) ListByDepartment(ctx context.Context, departmentID common.UUID) ([]position.Position, error) {
	return s.repo.ListByDepartment(ctx, departmentID)
}

func (s *PositionService) Delete(ctx context.Context, id common.UUID) error {
	return s.repo.Delete(ctx, id)
}
