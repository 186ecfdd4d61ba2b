// Package notify is the outbound notification boundary. Dispatch happens
// after the triggering domain write has committed, and a failed dispatch is
// logged and dropped: it never fails, retries, or rolls back the operation
// that requested it.
package notify

import (
	"context"
	"time"

	"veridia/internal/domain/application"
)

type Kind string

const (
	KindVerification            Kind = "verification"
	KindApplicationConfirmation Kind = "application_confirmation"
	KindAdminNewApplication     Kind = "admin_new_application"
	KindStatusUpdate            Kind = "status_update"
)

// Payload carries the event context a dispatcher needs to compose a message.
type Payload struct {
	ApplicantName  string
	ApplicantEmail string
	Position       string
	Department     string
	AppliedDate    time.Time
	Status         application.Status
	InterviewDate  *time.Time
}

// Dispatcher delivers one notification. Implementations may fail; callers
// swallow the error after logging it.
type Dispatcher interface {
	Notify(ctx context.Context, kind Kind, payload Payload) error
}

// AdminDirectory resolves the admin recipient group at dispatch time, so
// notification code carries no ambient user lookup.
type AdminDirectory interface {
	ListAdminEmails(ctx context.Context) ([]string, error)
}
