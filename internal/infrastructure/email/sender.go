package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/retain-hq/retain/internal/shared/config"
)

// Sender delivers rendered emails over SMTP.
type Sender struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
