package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	Send(to []string, subject, body string) error
	IsConfigured() bool
}

type emailService struct {
	dialer      *gomail.Dialer
	host        string
	username    string
	password    string
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	if senderEmail == "" {
		senderEmail = username
	}

	return &emailService{
		dialer:      d,
		host:        host,
		username:    username,
		password:    password,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// IsConfigured reports whether host and credentials are all present.
func (s *emailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

func (s *emailService) Send(to []string, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("smtp is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	m := gomail.NewMessage()
	if s.senderName != "" {
		m.SetAddressHeader("From", s.senderEmail, s.senderName)
	} else {
		m.SetHeader("From", s.senderEmail)
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", strings.Join(to, ","), err)
	}
	return nil
}
