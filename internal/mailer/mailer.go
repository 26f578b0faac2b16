package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/campus-suite/student-service/internal/config"
)

// SMTPMailer sends account mails directly over SMTP.
type SMTPMailer struct {
	config config.SMTPConfig
	logger *slog.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: cfg,
		logger: logger,
	}
}

// SendAccountVerification sends the account-verification mail for a
// newly created student. The caller decides what a failure means; this
// method only reports it.
func (m *SMTPMailer) SendAccountVerification(ctx context.Context, userID int64, email string) error {
	// Without credentials the mail is only logged. Keeps local
	// development working against no mail server.
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn("SMTP credentials not configured - verification email not sent",
			"user_id", userID,
			"to", email)
		return nil
	}

	subject := "Verify your school account"
	body := fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"A student account (#%d) has been created for this address.\r\n"+
			"Please verify your email to activate system access.\r\n\r\n"+
			"Regards,\r\n%s\r\n",
		userID, m.config.FromName)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.config.FromName, m.config.FromEmail, email, subject, body)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.config.FromEmail, []string{email}, []byte(msg))
	}()

	// smtp.SendMail has no context support; honor cancellation here so
	// a hanging mail server cannot hang the create operation.
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send verification email: %w", err)
		}
		m.logger.Info("Verification email sent", "user_id", userID, "to", email)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifyStatusChanged is a no-op for the mail transport; status changes
// carry no mail. Event-backed deployments publish these instead.
func (m *SMTPMailer) NotifyStatusChanged(ctx context.Context, userID int64, active bool) error {
	m.logger.Debug("Status change not mailed", "user_id", userID, "active", active)
	return nil
}

// NotifyDeleted is a no-op for the mail transport, same as above.
func (m *SMTPMailer) NotifyDeleted(ctx context.Context, userID int64, email string) error {
	m.logger.Debug("Deletion not mailed", "user_id", userID)
	return nil
}
