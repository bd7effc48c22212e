package site

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/LocNguyenSGU/portfolio/internal/config"
)

// ErrMailerDisabled is returned when no SMTP credentials are configured.
var ErrMailerDisabled = errors.New("site: SMTP credentials not configured")

// Message is a contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Mailer delivers contact form submissions.
type Mailer interface {
	Ready() bool
	Send(ctx context.Context, m Message) error
}

type disabledMailer struct{}

func (disabledMailer) Ready() bool                         { return false }
func (disabledMailer) Send(context.Context, Message) error { return ErrMailerDisabled }

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg      config.SMTP
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for cfg. Mail goes to cfg.To, or to the
// sending account when To is empty.
func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Ready() bool {
	return m.cfg.Enabled()
}

// Send delivers msg. The context is not consulted by net/smtp; it is checked
// once before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.Ready() {
		return ErrMailerDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, compose(m.cfg.User, to, msg)); err != nil {
		return fmt.Errorf("site: send mail: %w", err)
	}
	return nil
}

func compose(from, to string, msg Message) []byte {
	name := headerSafe(msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + name + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe drops line breaks so form input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

var errMissingField = errors.New("site: name and message are required")
