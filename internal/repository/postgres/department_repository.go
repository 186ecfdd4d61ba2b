package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/department"
)

type DepartmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) (*department.Department, error) {
	d.ID = common.NewUUID()
	d.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO departments (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		d.ID, d.Name, d.Description, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "department name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create department", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d department.Department) (*department.Department, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE departments SET name = $1, description = $2 WHERE id = $3`,
		d.Name, d.Description, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "department name already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update department", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "department not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, d.ID)
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id common.UUID) (*department.Department, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at FROM departments WHERE id = $1`, id)
	var d department.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "department not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load department", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]department.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list departments", err)
	}
	defer rows.Close()
	var items []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan department", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *DepartmentRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete department", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "department not found", sql.ErrNoRows)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
