package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends operational mail. In development mode (or without an
// API key) messages are logged instead of sent.
type EmailService struct {
	client     *resend.Client
	fromEmail  string
	adminEmail string
	appName    string
	isDev      bool
}

func NewEmailService(apiKey, fromEmail, adminEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		appName:    appName,
		isDev:      isDev,
	}
}

// SendPurgeReport mails a summary of the daily purge run to the admin address.
func (s *EmailService) SendPurgeReport(purged, failed int) error {
	if s.adminEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("[%s] Daily purge report", s.appName)
	body := fmt.Sprintf(
		"The daily file purge finished.\n\nPermanently removed: %d\nFailed (will retry tomorrow): %d\n",
		purged, failed,
	)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "purge_report", "to", s.adminEmail, "subject", subject, "purged", purged, "failed", failed)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.adminEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "purge_report", "to", s.adminEmail)
	}
	return err
}
