package app

import (
	"context"
	"testing"

	"veridia/internal/common"
	"veridia/internal/domain/position"
)

func TestPositionUpdate_OmittedFieldsKeepStoredValues(t *testing.T) {
	positions := newFakePositionRepo()
	departmentID := common.NewUUID()
	positionID := positions.add(position.Position{
		DepartmentID: departmentID,
		Title:        "Backend Engineer",
		Description:  "Owns the API surface",
		Requirements: []string{"Go", "PostgreSQL"},
		IsActive:     false,
	})
	service := NewPositionService(positions, newFakeDepartmentRepo(), &fakeActivityRepo{})

	title := "Senior Backend Engineer"
	updated, err := service.Update(context.Background(), positionID, position.Update{Title: &title})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Title != title {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if updated.IsActive {
		t.Fatal("expected the position to stay inactive after a title-only edit")
	}
	if updated.Description != "Owns the API surface" {
		t.Fatalf("expected description preserved, got %q", updated.Description)
	}
	if len(updated.Requirements) != 2 {
		t.Fatalf("expected requirements preserved, got %v", updated.Requirements)
	}
	if updated.DepartmentID != departmentID {
		t.Fatalf("expected department unchanged, got %s", updated.DepartmentID)
	}

	stored, _ := positions.GetByID(context.Background(), positionID)
	if stored.IsActive || stored.Description == "" || len(stored.Requirements) != 2 {
		t.Fatalf("expected stored fields preserved, got %+v", stored)
	}
}

func TestPositionUpdate_ExplicitActivationApplies(t *testing.T) {
	positions := newFakePositionRepo()
	positionID := positions.add(position.Position{
		DepartmentID: common.NewUUID(),
		Title:        "Product Designer",
		IsActive:     false,
	})
	service := NewPositionService(positions, newFakeDepartmentRepo(), &fakeActivityRepo{})

	active := true
	updated, err := service.Update(context.Background(), positionID, position.Update{IsActive: &active})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !updated.IsActive {
		t.Fatal("expected the position to be reactivated")
	}
	if updated.Title != "Product Designer" {
		t.Fatalf("expected title preserved, got %q", updated.Title)
	}
}

func TestPositionUpdate_BlankTitleRejected(t *testing.T) {
	positions := newFakePositionRepo()
	positionID := positions.add(position.Position{
		DepartmentID: common.NewUUID(),
		Title:        "Data Analyst",
		IsActive:     true,
	})
	service := NewPositionService(positions, newFakeDepartmentRepo(), &fakeActivityRepo{})

	title := "  "
	_, err := service.Update(context.Background(), positionID, position.Update{Title: &title})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	stored, _ := positions.GetByID(context.Background(), positionID)
	if stored.Title != "Data Analyst" {
		t.Fatalf("expected stored title unchanged, got %q", stored.Title)
	}
}

func TestPositionUpdate_UnknownPositionNotFound(t *testing.T) {
	service := NewPositionService(newFakePositionRepo(), newFakeDepartmentRepo(), &fakeActivityRepo{})

	title := "Anything"
	_, err := service.Update(context.Background(), common.NewUUID(), position.Update{Title: &title})
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
