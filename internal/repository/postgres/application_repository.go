package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, applicant_id, position, department, experience, current_company,
	current_salary, expected_salary, notice_period, availability, education, university,
	graduation_year, skills, linkedin_url, portfolio_url, cover_letter, referral,
	resume_url, status, interview_date, notes, applied_date, last_updated`

// CreateWithAudit commits the application row, its initial status-history
// entry and the submission activity as one unit. A failed audit insert rolls
// back the whole submission.
func (r *ApplicationRepository) CreateWithAudit(ctx context.Context, app application.Application, audit application.SubmissionAudit) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedDate = now
	app.LastUpdated = now
	if app.Status == "" {
		app.Status = application.StatusUnderReview
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		app.ID, app.ApplicantID, app.Position, app.Department, app.Experience, app.CurrentCompany,
		app.CurrentSalary, app.ExpectedSalary, app.NoticePeriod, app.Availability, app.Education, app.University,
		app.GraduationYear, app.Skills, app.LinkedinURL, app.PortfolioURL, app.CoverLetter, app.Referral,
		app.ResumeURL, app.Status, app.InterviewDate, app.Notes, app.AppliedDate, app.LastUpdated)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO status_history (id, application_id, status, changed_by, changed_at, comment)
		VALUES ($1, $2, $3, NULL, $4, $5)`,
		common.NewUUID(), app.ID, app.Status, now, audit.HistoryComment)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record status history", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO activities (id, action, description, applicant_id, application_id, changed_by, occurred_at, metadata)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, '{}')`,
		common.NewUUID(), audit.ActivityAction, audit.ActivityDescription, app.ApplicantID, app.ID, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record activity", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

// UpdateStatus applies the status change and appends its history entry in
// one transaction. Callers have already decided the status actually differs.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, change application.StatusChange) (*application.Application, error) {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `UPDATE applications SET
			status = $1,
			interview_date = COALESCE($2, interview_date),
			notes = COALESCE($3, notes),
			last_updated = $4
		WHERE id = $5`,
		change.Status, change.InterviewDate, change.Notes, now, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO status_history (id, application_id, status, changed_by, changed_at, comment)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		common.NewUUID(), id, change.Status, nullableUUID(change.ChangedBy), now, change.Comment)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record status history", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit status change", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Update(ctx context.Context, id common.UUID, update application.Update) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET
			notes = COALESCE($1, notes),
			interview_date = COALESCE($2, interview_date),
			last_updated = $3
		WHERE id = $4`,
		update.Notes, update.InterviewDate, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY applied_date DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE applicant_id = $1 ORDER BY applied_date DESC`, applicantID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicant applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListUpcomingInterviews(ctx context.Context, from time.Time) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE status = $1 AND interview_date >= $2 ORDER BY interview_date ASC`,
		application.StatusInterviewScheduled, from)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list upcoming interviews", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ApplicationRepository) History(ctx context.Context, applicationID common.UUID, limit int) ([]application.StatusHistory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, application_id, status, changed_by, changed_at, comment
		FROM status_history WHERE application_id = $1 ORDER BY changed_at DESC LIMIT $2`,
		applicationID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list status history", err)
	}
	defer rows.Close()
	var items []application.StatusHistory
	for rows.Next() {
		var entry application.StatusHistory
		var changedBy sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ApplicationID, &entry.Status, &changedBy, &entry.ChangedAt, &entry.Comment); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status history", err)
		}
		entry.ChangedBy = uuidFromNull(changedBy)
		items = append(items, entry)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var interviewDate sql.NullTime
	err := row.Scan(&app.ID, &app.ApplicantID, &app.Position, &app.Department, &app.Experience, &app.CurrentCompany,
		&app.CurrentSalary, &app.ExpectedSalary, &app.NoticePeriod, &app.Availability, &app.Education, &app.University,
		&app.GraduationYear, &app.Skills, &app.LinkedinURL, &app.PortfolioURL, &app.CoverLetter, &app.Referral,
		&app.ResumeURL, &app.Status, &interviewDate, &app.Notes, &app.AppliedDate, &app.LastUpdated)
	if err != nil {
		return nil, err
	}
	if interviewDate.Valid {
		value := interviewDate.Time
		app.InterviewDate = &value
	}
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read applications", err)
	}
	return items, nil
}

func nullableUUID(id *common.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func uuidFromNull(value sql.NullString) *common.UUID {
	if !value.Valid {
		return nil
	}
	id := common.UUID(value.String)
	return &id
}
