package app

import (
	"context"
	"sync"
	"testing"

	"veridia/internal/common"
	"veridia/internal/domain/department"
	"veridia/internal/domain/position"
)

type fakeDepartmentRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*department.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{byID: make(map[common.UUID]*department.Department)}
}

func (r *fakeDepartmentRepo) add(d department.Department) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = common.NewUUID()
	r.byID[d.ID] = &d
	return d.ID
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (*department.Department, error) {
	id := r.add(d)
	d.ID = id
	return &d, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) (*department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "department not found", nil)
	}
	stored := d
	r.byID[d.ID] = &stored
	return &d, nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id common.UUID) (*department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "department not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]department.Department, 0, len(r.byID))
	for _, d := range r.byID {
		items = append(items, *d)
	}
	return items, nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func TestDepartmentUpdate_RenameBlockedWhileReferenced(t *testing.T) {
	departments := newFakeDepartmentRepo()
	departmentID := departments.add(department.Department{Name: "Engineering", Description: "Builds the product"})
	positions := newFakePositionRepo()
	positions.add(position.Position{DepartmentID: departmentID, Title: "Backend Engineer", IsActive: true})
	service := NewDepartmentService(departments, positions, &fakeActivityRepo{})

	name := "Product Engineering"
	_, err := service.Update(context.Background(), departmentID, department.Update{Name: &name})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	stored, _ := departments.GetByID(context.Background(), departmentID)
	if stored.Name != "Engineering" {
		t.Fatalf("expected stored name unchanged, got %q", stored.Name)
	}
}

func TestDepartmentUpdate_DescriptionEditAllowedWhileReferenced(t *testing.T) {
	departments := newFakeDepartmentRepo()
	departmentID := departments.add(department.Department{Name: "Engineering", Description: "Builds the product"})
	positions := newFakePositionRepo()
	positions.add(position.Position{DepartmentID: departmentID, Title: "Backend Engineer", IsActive: true})
	service := NewDepartmentService(departments, positions, &fakeActivityRepo{})

	description := "Builds and runs the product"
	updated, err := service.Update(context.Background(), departmentID, department.Update{Description: &description})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Description != description {
		t.Fatalf("expected description updated, got %q", updated.Description)
	}
	if updated.Name != "Engineering" {
		t.Fatalf("expected name untouched, got %q", updated.Name)
	}
}

func TestDepartmentUpdate_RenameAllowedWhenUnreferenced(t *testing.T) {
	departments := newFakeDepartmentRepo()
	departmentID := departments.add(department.Department{Name: "Marketing"})
	service := NewDepartmentService(departments, newFakePositionRepo(), &fakeActivityRepo{})

	name := "Growth"
	updated, err := service.Update(context.Background(), departmentID, department.Update{Name: &name})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Name != "Growth" {
		t.Fatalf("expected renamed department, got %q", updated.Name)
	}
}

func TestDepartmentUpdate_EmptyNameRejected(t *testing.T) {
	departments := newFakeDepartmentRepo()
	departmentID := departments.add(department.Department{Name: "Design"})
	service := NewDepartmentService(departments, newFakePositionRepo(), &fakeActivityRepo{})

	name := "   "
	_, err := service.Update(context.Background(), departmentID, department.Update{Name: &name})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
