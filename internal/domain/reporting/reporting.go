package reporting

import (
	"context"

	"veridia/internal/common"
	"veridia/internal/domain/application"
)

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// Repository exposes the read-only aggregations the dashboards are built
// from. All grouping happens in SQL; services only shape and round.
type Repository interface {
	// StatusCounts returns per-status totals, scoped to one applicant when
	// applicantID is non-nil.
	StatusCounts(ctx context.Context, applicantID *common.UUID) (map[application.Status]int, error)
	DepartmentCounts(ctx context.Context) (map[string]int, error)
	MonthlyCounts(ctx context.Context) ([]MonthCount, error)
	TopPositions(ctx context.Context, limit int) ([]PositionCount, error)
}
