package postgres

import (
	"context"
	"database/sql"

	"veridia/internal/common"
	"veridia/internal/domain/application"
	"veridia/internal/domain/reporting"
)

type ReportingRepository struct {
	db *sql.DB
}

func NewReportingRepository(db *sql.DB) *ReportingRepository {
	return &ReportingRepository{db: db}
}

func (r *ReportingRepository) StatusCounts(ctx context.Context, applicantID *common.UUID) (map[application.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM applications GROUP BY status`
	args := []any{}
	if applicantID != nil {
		query = `SELECT status, COUNT(*) FROM applications WHERE applicant_id = $1 GROUP BY status`
		args = append(args, *applicantID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by status", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var status application.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ReportingRepository) DepartmentCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT department, COUNT(*) FROM applications GROUP BY department ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by department", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var department string
		var count int
		if err := rows.Scan(&department, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan department count", err)
		}
		counts[department] = count
	}
	return counts, rows.Err()
}

func (r *ReportingRepository) MonthlyCounts(ctx context.Context) ([]reporting.MonthCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT to_char(applied_date, 'YYYY-MM') AS month, COUNT(*)
		FROM applications GROUP BY month ORDER BY month`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by month", err)
	}
	defer rows.Close()
	var items []reporting.MonthCount
	for rows.Next() {
		var item reporting.MonthCount
		if err := rows.Scan(&item.Month, &item.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan month count", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ReportingRepository) TopPositions(ctx context.Context, limit int) ([]reporting.PositionCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT position, COUNT(*) FROM applications
		GROUP BY position ORDER BY COUNT(*) DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to rank positions", err)
	}
	defer rows.Close()
	var items []reporting.PositionCount
	for rows.Next() {
		var item reporting.PositionCount
		if err := rows.Scan(&item.Position, &item.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan position count", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
