package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/application"
	"veridia/internal/domain/user"
	"veridia/internal/notify"
	"veridia/internal/observability"
)

// ApplicationService is the only path that creates applications or moves
// their status. The audit writes it derives commit atomically with the
// domain write; notifications go out afterwards, best-effort.
type ApplicationService struct {
	repo     application.Repository
	users    user.Repository
	notifier notify.Dispatcher
	logger   *observability.Logger
}

func NewApplicationService(repo application.Repository, users user.Repository, notifier notify.Dispatcher, logger *observability.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, users: users, notifier: notifier, logger: logger}
}

// Draft holds the applicant-supplied fields of a submission. The resume URL
// comes from the blob store before the draft reaches this service.
type Draft struct {
	Position       string
	Department     string
	Experience     string
	CurrentCompany string
	CurrentSalary  string
	ExpectedSalary string
	NoticePeriod   string
	Availability   string
	Education      string
	University     string
	GraduationYear string
	Skills         string
	LinkedinURL    string
	PortfolioURL   string
	CoverLetter    string
	Referral       string
	ResumeURL      string
}

func (s *ApplicationService) Submit(ctx context.Context, draft Draft, applicantID common.UUID) (*application.Application, error) {
	fields := map[string]string{}
	if strings.TrimSpace(draft.Position) == "" {
		fields["position"] = "position is required"
	}
	if strings.TrimSpace(draft.Department) == "" {
		fields["department"] = "department is required"
	}
	if strings.TrimSpace(draft.ResumeURL) == "" {
		fields["resume"] = "resume is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid application", fields)
	}

	applicant, err := s.users.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateWithAudit(ctx, application.Application{
		ApplicantID:    applicantID,
		Position:       draft.Position,
		Department:     draft.Department,
		Experience:     draft.Experience,
		CurrentCompany: draft.CurrentCompany,
		CurrentSalary:  draft.CurrentSalary,
		ExpectedSalary: draft.ExpectedSalary,
		NoticePeriod:   draft.NoticePeriod,
		Availability:   draft.Availability,
		Education:      draft.Education,
		University:     draft.University,
		GraduationYear: draft.GraduationYear,
		Skills:         draft.Skills,
		LinkedinURL:    draft.LinkedinURL,
		PortfolioURL:   draft.PortfolioURL,
		CoverLetter:    draft.CoverLetter,
		Referral:       draft.Referral,
		ResumeURL:      draft.ResumeURL,
		Status:         application.StatusUnderReview,
	}, application.SubmissionAudit{
		HistoryComment:      "Application submitted",
		ActivityAction:      "application_submitted",
		ActivityDescription: fmt.Sprintf("New application received for %s", draft.Position),
	})
	if err != nil {
		return nil, err
	}

	payload := notify.Payload{
		ApplicantName:  applicant.FullName(),
		ApplicantEmail: applicant.Email,
		Position:       created.Position,
		Department:     created.Department,
		AppliedDate:    created.AppliedDate,
		Status:         created.Status,
	}
	s.dispatch(ctx, notify.KindApplicationConfirmation, payload)
	s.dispatch(ctx, notify.KindAdminNewApplication, payload)

	return created, nil
}

// Transition moves an application to a new status. Repeating the current
// status succeeds without touching the audit trail; a real change writes
// the row update and its history entry in one transaction.
func (s *ApplicationService) Transition(ctx context.Context, id common.UUID, actor *common.UUID, status application.Status, interviewDate *time.Time, notes *string, comment string) (*application.Application, error) {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !isKnownStatus(normalized) {
		return nil, common.NewValidationError("invalid status", map[string]string{
			"status": "status must be under-review, interview-scheduled, accepted, or rejected",
		})
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == normalized {
		return current, nil
	}

	historyComment := comment
	if historyComment == "" && notes != nil {
		historyComment = *notes
	}

	updated, err := s.repo.UpdateStatus(ctx, id, application.StatusChange{
		Status:        normalized,
		InterviewDate: interviewDate,
		Notes:         notes,
		ChangedBy:     actor,
		Comment:       historyComment,
	})
	if err != nil {
		return nil, err
	}

	if applicant, err := s.users.GetByID(ctx, updated.ApplicantID); err != nil {
		s.logger.Warn("skipping status notification: applicant lookup failed", err)
	} else {
		s.dispatch(ctx, notify.KindStatusUpdate, notify.Payload{
			ApplicantName:  applicant.FullName(),
			ApplicantEmail: applicant.Email,
			Position:       updated.Position,
			Department:     updated.Department,
			AppliedDate:    updated.AppliedDate,
			Status:         updated.Status,
			InterviewDate:  updated.InterviewDate,
		})
	}

	return updated, nil
}

// Update edits the application fields that are open to general mutation.
// The update type carries no status, so this path cannot move the state
// machine or fabricate history.
func (s *ApplicationService) Update(ctx context.Context, id common.UUID, update application.Update) (*application.Application, error) {
	return s.repo.Update(ctx, id, update)
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != user.RoleAdmin && app.ApplicantID != actorID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another applicant", nil)
	}
	return app, nil
}

// Detail is an application with its applicant and recent history attached,
// the shape list/detail endpoints return.
type Detail struct {
	application.Application
	Applicant     *user.User                  `json:"applicant,omitempty"`
	StatusHistory []application.StatusHistory `json:"status_history"`
}

const historyPreviewLimit = 10

func (s *ApplicationService) GetDetail(ctx context.Context, id common.UUID, actorID common.UUID, actorRole user.Role) (*Detail, error) {
	app, err := s.Get(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.History(ctx, id, historyPreviewLimit)
	if err != nil {
		return nil, err
	}
	detail := &Detail{Application: *app, StatusHistory: history}
	if applicant, err := s.users.GetByID(ctx, app.ApplicantID); err == nil {
		detail.Applicant = applicant
	}
	return detail, nil
}

func (s *ApplicationService) List(ctx context.Context, actorID common.UUID, actorRole user.Role) ([]application.Application, error) {
	if actorRole == user.RoleAdmin {
		return s.repo.List(ctx)
	}
	return s.repo.ListByApplicant(ctx, actorID)
}

// Delete is an administrative override, not part of the normal workflow.
// History cascades away with the application; activity rows keep their
// descriptions and lose only the reference.
func (s *ApplicationService) Delete(ctx context.Context, id common.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *ApplicationService) dispatch(ctx context.Context, kind notify.Kind, payload notify.Payload) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, kind, payload); err != nil {
		s.logger.Warn(fmt.Sprintf("notification %s failed", kind), err)
	}
}

func isKnownStatus(status application.Status) bool {
	switch status {
	case application.StatusUnderReview, application.StatusInterviewScheduled, application.StatusAccepted, application.StatusRejected:
		return true
	default:
		return false
	}
}
