// Package mailer delivers contact-form submissions over SMTP.
package mailer

import (
	"fmt"
	"strings"
	"sync"

	gomail "github.com/wneessen/go-mail"

	"github.com/stevenshelley58-afk/redner-vault/internal/config"
)

// ContactMessage is one validated contact-form submission plus the request
// metadata included in the notification body.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
	Referer string
	IP      string
}

func (m ContactMessage) Subject() string {
	return "New contact from " + m.Name
}

func (m ContactMessage) Body() string {
	lines := []string{
		"Name: " + m.Name,
		"Email: " + m.Email,
		"",
		"Message:",
		m.Message,
		"",
		"---",
	}
	if m.Referer != "" {
		lines = append(lines, "Referer: "+m.Referer)
	}
	lines = append(lines, "IP: "+m.IP)
	return strings.Join(lines, "\n")
}

type Mailer interface {
	SendContact(msg ContactMessage) error
}

// SMTPMailer sends through the configured SMTP relay. Send fails when
// credentials are unset so the contact endpoint fails closed rather than
// silently dropping mail.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (s *SMTPMailer) SendContact(msg ContactMessage) error {
	if s.cfg.SMTPUser == "" || s.cfg.SMTPPass == "" {
		return fmt.Errorf("email service not configured")
	}

	m := gomail.NewMsg()
	if err := m.From(s.cfg.ContactFrom); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(s.cfg.ContactTo); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}
	m.Subject(msg.Subject())
	m.SetBodyString(gomail.TypeTextPlain, msg.Body())

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.SMTPUser),
		gomail.WithPassword(s.cfg.SMTPPass),
	}
	if s.cfg.SMTPPort == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

// Recorder captures messages instead of sending them; used by tests and
// local development.
type Recorder struct {
	mu   sync.Mutex
	Sent []ContactMessage
	Err  error
}

func (r *Recorder) SendContact(msg ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, msg)
	return nil
}
