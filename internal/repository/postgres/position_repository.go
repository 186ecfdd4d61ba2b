package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"veridia/internal/common"
	"veridia/internal/domain/position"
)

type PositionRepository struct {
	db *sql.DB
}

func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Create(ctx context.Context, p position.Position) (*position.Position, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO positions (id, department_id, title, description, requirements, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.DepartmentID, p.Title, p.Description, pq.Array(p.Requirements), p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create position", err)
	}
	return &p, nil
}

func (r *PositionRepository) Update(ctx context.Context, p position.Position) (*position.Position, error) {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE positions SET title = $1, description = $2, requirements = $3, is_active = $4, updated_at = $5
		WHERE id = $6`,
		p.Title, p.Description, pq.Array(p.Requirements), p.IsActive, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update position", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "position not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PositionRepository) GetByID(ctx context.Context, id common.UUID) (*position.Position, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, department_id, title, description, requirements, is_active, created_at, updated_at
		FROM positions WHERE id = $1`, id)
	var p position.Position
	if err := row.Scan(&p.ID, &p.DepartmentID, &p.Title, &p.Description, pq.Array(&p.Requirements), &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "position not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load position", err)
	}
	return &p, nil
}

func (r *PositionRepository) ListActive(ctx context.Context) ([]position.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, department_id, title, description, requirements, is_active, created_at, updated_at
		FROM positions WHERE is_active ORDER BY title`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list positions", err)
	}
	return collectPositions(rows)
}

func (r *PositionRepository) ListByDepartment(ctx context.Context, departmentID common.UUID) ([]position.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, department_id, title, description, requirements, is_active, created_at, updated_at
		FROM positions WHERE department_id = $1 ORDER BY title`, departmentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list department positions", err)
	}
	return collectPositions(rows)
}

func (r *PositionRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM positions WHERE is_active`).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count active positions", err)
	}
	return count, nil
}

func (r *PositionRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete position", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "position not found", sql.ErrNoRows)
	}
	return nil
}

func collectPositions(rows *sql.Rows) ([]position.Position, error) {
	defer rows.Close()
	var items []position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Title, &p.Description, pq.Array(&p.Requirements), &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan position", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read positions", err)
	}
	return items, nil
}
