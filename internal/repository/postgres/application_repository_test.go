package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"veridia/internal/common"
	"veridia/internal/domain/application"
)

var applicationRows = []string{
	"id", "applicant_id", "position", "department", "experience", "current_company",
	"current_salary", "expected_salary", "notice_period", "availability", "education", "university",
	"graduation_year", "skills", "linkedin_url", "portfolio_url", "cover_letter", "referral",
	"resume_url", "status", "interview_date", "notes", "applied_date", "last_updated",
}

func applicationRow(id, applicantID common.UUID, status application.Status) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(applicationRows).AddRow(
		string(id), string(applicantID), "Backend Engineer", "Engineering", "", "",
		"", "", "", "", "", "",
		"", "", "", "", "", "",
		"http://localhost:8000/media/resumes/cv.pdf", string(status), nil, "", now, now,
	)
}

func TestUpdateStatus_CommitsRowAndHistoryTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationRepository(db)
	id := common.NewUUID()
	applicantID := common.NewUUID()
	actor := common.NewUUID()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applications SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO status_history`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id`).
		WillReturnRows(applicationRow(id, applicantID, application.StatusAccepted))

	updated, err := repo.UpdateStatus(context.Background(), id, application.StatusChange{
		Status:    application.StatusAccepted,
		ChangedBy: &actor,
		Comment:   "Offer approved",
	})
	require.NoError(t, err)
	require.Equal(t, application.StatusAccepted, updated.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_RollsBackWhenHistoryInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationRepository(db)
	id := common.NewUUID()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applications SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO status_history`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = repo.UpdateStatus(context.Background(), id, application.StatusChange{
		Status: application.StatusRejected,
	})
	require.Error(t, err)
	require.True(t, common.Is(err, common.CodeInternal))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_MissingApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE applications SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.UpdateStatus(context.Background(), common.NewUUID(), application.StatusChange{
		Status: application.StatusAccepted,
	})
	require.True(t, common.Is(err, common.CodeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithAudit_RollsBackWhenActivityInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO status_history`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO activities`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = repo.CreateWithAudit(context.Background(), application.Application{
		ApplicantID: common.NewUUID(),
		Position:    "Backend Engineer",
		Department:  "Engineering",
		ResumeURL:   "http://localhost:8000/media/resumes/cv.pdf",
	}, application.SubmissionAudit{
		HistoryComment:      "Application submitted",
		ActivityAction:      "application_submitted",
		ActivityDescription: "New application received for Backend Engineer",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithAudit_WritesInitialHistoryWithNilActor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationRepository(db)
	applicantID := common.NewUUID()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO status_history \(id, application_id, status, changed_by, changed_at, comment\)\s+VALUES \(\$1, \$2, \$3, NULL, \$4, \$5\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO activities`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateWithAudit(context.Background(), application.Application{
		ApplicantID: applicantID,
		Position:    "Backend Engineer",
		Department:  "Engineering",
		ResumeURL:   "http://localhost:8000/media/resumes/cv.pdf",
	}, application.SubmissionAudit{
		HistoryComment:      "Application submitted",
		ActivityAction:      "application_submitted",
		ActivityDescription: "New application received for Backend Engineer",
	})
	require.NoError(t, err)
	require.Equal(t, application.StatusUnderReview, created.Status)
	require.NotEmpty(t, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
