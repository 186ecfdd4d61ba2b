package notify

import (
	"context"
	"fmt"
	"strings"

	"veridia/internal/domain/application"
	"veridia/internal/integration/mailrelay"
)

// Sender is satisfied by mailrelay.Client.
type Sender interface {
	Send(ctx context.Context, msg mailrelay.Message) error
}

type MailDispatcher struct {
	sender Sender
	admins AdminDirectory
	from   string
}

func NewMailDispatcher(sender Sender, admins AdminDirectory, from string) *MailDispatcher {
	return &MailDispatcher{sender: sender, admins: admins, from: from}
}

func (d *MailDispatcher) Notify(ctx context.Context, kind Kind, payload Payload) error {
	switch kind {
	case KindVerification:
		return d.send(ctx, []string{payload.ApplicantEmail},
			"Welcome to Veridia - Verify Your Email",
			fmt.Sprintf("Hello %s,\n\nThank you for registering with Veridia! Please verify your email address to complete your registration.\n\nBest regards,\nVeridia Team", payload.ApplicantName))
	case KindApplicationConfirmation:
		return d.send(ctx, []string{payload.ApplicantEmail},
			fmt.Sprintf("Application Received - %s", payload.Position),
			fmt.Sprintf("Hello %s,\n\nThank you for your interest in the %s position at Veridia. We have received your application and will review it shortly.\n\nApplication Details:\n- Position: %s\n- Department: %s\n- Applied Date: %s\n\nWe will get back to you soon with an update.\n\nBest regards,\nVeridia HR Team",
				payload.ApplicantName, payload.Position, payload.Position, payload.Department, payload.AppliedDate.Format("January 2, 2006")))
	case KindAdminNewApplication:
		admins, err := d.admins.ListAdminEmails(ctx)
		if err != nil {
			return err
		}
		if len(admins) == 0 {
			return nil
		}
		return d.send(ctx, admins,
			fmt.Sprintf("New Application Received - %s", payload.Position),
			fmt.Sprintf("A new application has been received:\n\nApplicant: %s\nEmail: %s\nPosition: %s\nDepartment: %s\nApplied Date: %s\n\nPlease review the application in the admin dashboard.",
				payload.ApplicantName, payload.ApplicantEmail, payload.Position, payload.Department, payload.AppliedDate.Format("January 2, 2006")))
	case KindStatusUpdate:
		subject, body := statusUpdateMessage(payload)
		return d.send(ctx, []string{payload.ApplicantEmail}, subject, body)
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}
}

func (d *MailDispatcher) send(ctx context.Context, to []string, subject, body string) error {
	return d.sender.Send(ctx, mailrelay.Message{
		From:    d.from,
		To:      to,
		Subject: subject,
		Body:    body,
	})
}

func statusUpdateMessage(payload Payload) (string, string) {
	var subject, line string
	switch payload.Status {
	case application.StatusUnderReview:
		subject = fmt.Sprintf("Application Update - %s", payload.Position)
		line = fmt.Sprintf("Your application for %s is currently under review.", payload.Position)
	case application.StatusInterviewScheduled:
		subject = fmt.Sprintf("Interview Invitation - %s", payload.Position)
		line = fmt.Sprintf("Congratulations! We would like to invite you for an interview for the %s position.", payload.Position)
	case application.StatusAccepted:
		subject = fmt.Sprintf("Congratulations! Offer Letter - %s", payload.Position)
		line = fmt.Sprintf("We are pleased to inform you that you have been selected for the %s position!", payload.Position)
	case application.StatusRejected:
		subject = fmt.Sprintf("Application Update - %s", payload.Position)
		line = fmt.Sprintf("Thank you for your interest. Unfortunately, we have decided to move forward with other candidates for the %s position.", payload.Position)
	default:
		subject = fmt.Sprintf("Application Update - %s", payload.Position)
		line = fmt.Sprintf("Your application status has been updated to %s.", payload.Status)
	}

	body := fmt.Sprintf("Hello %s,\n\n%s\n\nApplication Details:\n- Position: %s\n- Department: %s\n- Status: %s",
		payload.ApplicantName, line, payload.Position, payload.Department, statusTitle(payload.Status))
	if payload.Status == application.StatusInterviewScheduled && payload.InterviewDate != nil {
		body += fmt.Sprintf("\n- Interview Date: %s", payload.InterviewDate.Format("January 2, 2006 at 3:04 PM"))
	}
	body += "\n\nBest regards,\nVeridia HR Team"
	return subject, body
}

func statusTitle(status application.Status) string {
	words := strings.Split(string(status), "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
