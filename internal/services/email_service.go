package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Notifier delivers outbound mail. Implementations must not retry; a failure
// is reported to the caller and captured there.
type Notifier interface {
	Send(to []string, subject, body string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool) Notifier {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		dryRun: dryRun || smtpHost == "",
	}
}

func (s *emailService) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipient")
	}
	if s.dryRun {
		log.Printf("[email][dry-run] to=%v subject=%q", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
