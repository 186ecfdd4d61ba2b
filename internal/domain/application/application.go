package application

import (
	"time"

	"veridia/internal/common"
)

type Status string

const (
	StatusUnderReview        Status = "under-review"
	StatusInterviewScheduled Status = "interview-scheduled"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
)

// Application snapshots the applicant's submitted profile at creation time.
// Position and department are stored as the names the applicant applied
// against; renaming the catalog entry later does not rewrite history.
type Application struct {
	ID             common.UUID `json:"id"`
	ApplicantID    common.UUID `json:"applicant_id"`
	Position       string      `json:"position"`
	Department     string      `json:"department"`
	Experience     string      `json:"experience,omitempty"`
	CurrentCompany string      `json:"current_company,omitempty"`
	CurrentSalary  string      `json:"current_salary,omitempty"`
	ExpectedSalary string      `json:"expected_salary,omitempty"`
	NoticePeriod   string      `json:"notice_period,omitempty"`
	Availability   string      `json:"availability,omitempty"`
	Education      string      `json:"education,omitempty"`
	University     string      `json:"university,omitempty"`
	GraduationYear string      `json:"graduation_year,omitempty"`
	Skills         string      `json:"skills,omitempty"`
	LinkedinURL    string      `json:"linkedin_url,omitempty"`
	PortfolioURL   string      `json:"portfolio_url,omitempty"`
	CoverLetter    string      `json:"cover_letter,omitempty"`
	Referral       string      `json:"referral,omitempty"`
	ResumeURL      string      `json:"resume_url"`
	Status         Status      `json:"status"`
	InterviewDate  *time.Time  `json:"interview_date,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	AppliedDate    time.Time   `json:"applied_date"`
	LastUpdated    time.Time   `json:"last_updated"`
}

// StatusHistory rows are append-only. They are never updated or deleted
// except by cascade when the parent application is removed.
type StatusHistory struct {
	ID            common.UUID  `json:"id"`
	ApplicationID common.UUID  `json:"application_id"`
	Status        Status       `json:"status"`
	ChangedBy     *common.UUID `json:"changed_by"`
	ChangedAt     time.Time    `json:"changed_at"`
	Comment       string       `json:"comment,omitempty"`
}

// Update is the mutable surface reachable outside the transition engine.
// It has no status field on purpose: status only changes through
// ApplicationService.Transition.
type Update struct {
	Notes         *string
	InterviewDate *time.Time
}

// StatusChange carries everything one transition writes: the row update
// and the history entry that must commit with it.
type StatusChange struct {
	Status        Status
	InterviewDate *time.Time
	Notes         *string
	ChangedBy     *common.UUID
	Comment       string
}
