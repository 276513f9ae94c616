package auth

import (
	"fmt"

	"github.com/mynews-app/backend/config"
)

// MailSender is the slice of the mail service the notifier needs.
type MailSender interface {
	SendTemplate(templateName string, to []string, subject string, data map[string]any) error
}

// MailNotifier adapts the mail service to the Notifier contract.
type MailNotifier struct {
	mail MailSender
	cfg  *config.Config
}

func NewMailNotifier(mail MailSender, cfg *config.Config) *MailNotifier {
	return &MailNotifier{mail: mail, cfg: cfg}
}

func (n *MailNotifier) SendVerification(email, verifyURL string) error {
	data := map[string]any{
		"Email":           email,
		"VerificationURL": verifyURL,
		"ExpiryDuration":  n.cfg.Auth.VerificationExpiry.String(),
		"AppName":         n.cfg.App.Name,
	}
	subject := fmt.Sprintf("Verify your %s account", n.cfg.App.Name)
	return n.mail.SendTemplate("email_verification", []string{email}, subject, data)
}

func (n *MailNotifier) SendReset(email, resetURL string) error {
	data := map[string]any{
		"Email":          email,
		"ResetURL":       resetURL,
		"ExpiryDuration": n.cfg.Auth.ResetExpiry.String(),
		"AppName":        n.cfg.App.Name,
	}
	subject := fmt.Sprintf("Reset your %s password", n.cfg.App.Name)
	return n.mail.SendTemplate("password_reset", []string{email}, subject, data)
}
