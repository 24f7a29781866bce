package provider

import (
	"context"
	"fmt"

	"github.com/bbois1999/gun-event/domain"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers transactional email through Resend.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your GunEvent Verification Code",
		Html:    verificationHTML(code),
		Text:    verificationText(code),
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return &domain.ProviderError{Provider: "resend", Err: err}
	}
	return nil
}

func verificationHTML(code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Your Verification Code</h2>
  <p>Use the following code to verify your account:</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; text-align: center; font-size: 24px; letter-spacing: 5px; font-weight: bold; margin: 20px 0;">%s</div>
  <p>This code will expire in 10 minutes.</p>
  <p>If you didn't request this code, you can safely ignore this email.</p>
  <p style="margin-top: 30px; color: #777; font-size: 12px;">This is an automated message from GunEvent. Please do not reply to this email.</p>
</div>`, code)
}

func verificationText(code string) string {
	return fmt.Sprintf("Your Verification Code: %s\n\nThis code will expire in 10 minutes.\n\nIf you didn't request this code, you can safely ignore this email.\n", code)
}
