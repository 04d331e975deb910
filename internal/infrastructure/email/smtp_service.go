package email

import (
	"context"
	"fmt"
	"net/smtp"

	"blog-backend/internal/config"
)

type WelcomeEmailData struct {
	Email   string
	Name    string
	Surname string
}

// EmailService delivers the registration welcome mail. Callers treat
// delivery as best-effort: a send failure never fails registration.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		smtpFrom: cfg.From,
	}
}

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	subject := "Welcome to the blog"
	body := fmt.Sprintf(`Hi %s %s,

Thanks for registering. Your account has been created successfully
and you can now write posts, comment and like.

The blog team`, data.Name, data.Surname)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
