package activity

import (
	"time"

	"veridia/internal/common"
)

// Activity is the admin-facing event feed. Entries are append-only and
// survive deletion of the application they reference.
type Activity struct {
	ID            common.UUID       `json:"id"`
	Action        string            `json:"action"`
	Description   string            `json:"description"`
	ApplicantID   *common.UUID      `json:"applicant"`
	ApplicationID *common.UUID      `json:"application"`
	ChangedBy     *common.UUID      `json:"changed_by"`
	Timestamp     time.Time         `json:"timestamp"`
	Metadata      map[string]string `json:"metadata"`
}

const (
	ActionApplicationSubmitted = "application_submitted"
	ActionDepartmentCreated    = "department_created"
	ActionPositionCreated      = "position_created"
	ActionUserRegistered       = "user_registered"
)
