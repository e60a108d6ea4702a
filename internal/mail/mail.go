// Package mail delivers verification and password-reset messages over SMTP.
// The service invokes it asynchronously and never consumes a result beyond
// logging; delivery failure must not fail the originating request.
package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/shuvam021/fundoo-v3/internal/config"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, log *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// SendVerification sends the email-confirmation link for a fresh or
// unverified account.
func (s *Sender) SendVerification(to, token string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Verify your Fundoo account"

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Please confirm your email address by opening the link below:\n\n"+
			"%s/api/verify/%s\n\n"+
			"The link is valid for 24 hours.\n\n"+
			"Best regards,\nFundoo Notes",
		s.cfg.BaseURL, token,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendPasswordReset sends the password-reset link.
func (s *Sender) SendPasswordReset(to, token string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Reset your Fundoo password"

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"A password reset was requested for your account. Open the link\n"+
			"below to choose a new password:\n\n"+
			"%s/api/update-password/%s\n\n"+
			"The link is valid for 15 minutes. If you did not request a reset,\n"+
			"you can ignore this message.\n\n"+
			"Best regards,\nFundoo Notes",
		s.cfg.BaseURL, token,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.log.Errorf("Failed to send email to %s: %v", e.To[0], err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.Infof("Email sent to %s: %s", e.To[0], e.Subject)
	return nil
}
