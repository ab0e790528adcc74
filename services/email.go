package services

import (
	"fmt"
	"net/smtp"

	"campusops/config"
)

// SMTPEmailSender delivers email notifications over plain SMTP.
type SMTPEmailSender struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPEmailSender(cfg *config.Config) (*SMTPEmailSender, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("incomplete SMTP configuration: host=%q, username=%q",
			cfg.SMTPHost, cfg.SMTPUsername)
	}
	return &SMTPEmailSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}, nil
}

func (s *SMTPEmailSender) Send(to, subject, body string) error {
	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	message := "From: " + s.username + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n" +
		body

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}
