// Package email delivers operational notices over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/domain/user"
	"civicgrid/internal/shared/config"
	"civicgrid/internal/shared/logger"
)

// SMTPNotifier sends the assignment notice to engineers. Callers treat
// delivery as best-effort; a failed send never fails the operation that
// triggered it.
type SMTPNotifier struct {
	config config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(cfg config.EmailConfig, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: log.Named("smtp_notifier"),
	}
}

var _ usecases.AssignmentNotifier = (*SMTPNotifier)(nil)

func (s *SMTPNotifier) NotifyAssignment(ctx context.Context, recipient *user.User, ticketNumber, address string) error {
	issueURL := fmt.Sprintf("%s/issues/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("Issue %s assigned to you", ticketNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Issue Assignment</h2>
			<p>Hello %s,</p>
			<p>Issue <strong>%s</strong> at <strong>%s</strong> has been assigned to you.</p>
			<p><a href="%s">Open the issue</a></p>
		</body>
		</html>
	`, recipient.Name(), ticketNumber, address, issueURL)

	plainBody := fmt.Sprintf(`
Hello %s,

Issue %s at %s has been assigned to you.

Open it here:
%s
	`, recipient.Name(), ticketNumber, address, issueURL)

	if err := s.sendEmail(recipient.Email(), subject, htmlBody, plainBody); err != nil {
		return err
	}

	s.logger.Infow("assignment notice sent",
		"recipient", recipient.Email(),
		"ticket_number", ticketNumber,
	)
	return nil
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
