// Package email renders and delivers transactional email over SMTP.
package email

import (
	"context"

	"salescrm_backend/platform/config"
)

// ReleasedProspect is one line in a release summary email.
type ReleasedProspect struct {
	CompanyName   string
	PreviousOwner string
}

// Sender delivers transactional email.
type Sender interface {
	SendReleaseSummaryEmail(ctx context.Context, toEmail string, released []ReleasedProspect, poolURL string) error
	SendProspectAssignedEmail(ctx context.Context, toEmail, companyName, ownerName, prospectURL string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender satisfies Sender without delivering anything. Used when SMTP is
// not configured.
type NoopSender struct{}

func (NoopSender) SendReleaseSummaryEmail(ctx context.Context, toEmail string, released []ReleasedProspect, poolURL string) error {
	return nil
}

func (NoopSender) SendProspectAssignedEmail(ctx context.Context, toEmail, companyName, ownerName, prospectURL string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

var _ Sender = NoopSender{}

// NewSender builds the configured Sender. Returns a NoopSender when email
// delivery is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
