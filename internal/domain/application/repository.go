package application

import (
	"context"
	"time"

	"veridia/internal/common"
)

// SubmissionAudit names the audit rows a submission writes in the same
// transaction as the application insert.
type SubmissionAudit struct {
	HistoryComment      string
	ActivityAction      string
	ActivityDescription string
}

type Repository interface {
	// CreateWithAudit inserts the application, its initial status-history
	// entry (nil actor) and the submission activity as one transaction.
	CreateWithAudit(ctx context.Context, app Application, audit SubmissionAudit) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	// UpdateStatus applies the row update and appends the history entry
	// atomically. It is the only status write path.
	UpdateStatus(ctx context.Context, id common.UUID, change StatusChange) (*Application, error)
	Update(ctx context.Context, id common.UUID, update Update) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	History(ctx context.Context, applicationID common.UUID, limit int) ([]StatusHistory, error)
	ListUpcomingInterviews(ctx context.Context, from time.Time) ([]Application, error)
}
