// Package notify e-mails quotations to customers.
package notify

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/domodwyer/mailyak/v3"
)

var (
	ErrNoRecipient = errors.New("customer has no email address")
	ErrDisabled    = errors.New("mail is not configured")
)

// Config is the SMTP relay used for outgoing mail.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Message is one quotation e-mail.
type Message struct {
	To           string
	CustomerName string
	QuoteNumber  string
	Total        string
	FileName     string
	PDF          []byte
}

// Mailer sends quotation e-mails through SMTP.
type Mailer struct {
	cfg  Config
	auth smtp.Auth
}

// NewMailer returns a mailer for cfg. Without a host or sender address the mailer is disabled.
func NewMailer(cfg Config) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

// Enabled reports whether the mailer can send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Host != "" && m.cfg.From != ""
}

// Send delivers msg.
func (m *Mailer) Send(msg Message) error {
	if !m.Enabled() {
		return ErrDisabled
	}
	mail, err := m.compose(msg)
	if err != nil {
		return err
	}
	if err := mail.Send(); err != nil {
		return fmt.Errorf("send quotation %s to %s: %w", msg.QuoteNumber, msg.To, err)
	}
	return nil
}

func (m *Mailer) compose(msg Message) (*mailyak.MailYak, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return nil, ErrNoRecipient
	}

	port := m.cfg.Port
	if port == "" {
		port = "587"
	}

	mail := mailyak.New(m.cfg.Host+":"+port, m.auth)
	mail.To(to)
	mail.From(m.cfg.From)
	if m.cfg.FromName != "" {
		mail.FromName(m.cfg.FromName)
	}
	mail.Subject(fmt.Sprintf("Your quotation %s", msg.QuoteNumber))

	greeting := "Hi"
	if name := strings.TrimSpace(msg.CustomerName); name != "" {
		greeting = "Hi " + name
	}
	body := fmt.Sprintf("%s,\n\nPlease find attached quotation %s", greeting, msg.QuoteNumber)
	if msg.Total != "" {
		body += fmt.Sprintf(" for a total of %s (GST inclusive)", msg.Total)
	}
	body += ".\n\nThe quote is valid for 14 days. Reply to this e-mail to confirm and we will arrange the 50% deposit.\n"
	if m.cfg.FromName != "" {
		body += "\n" + m.cfg.FromName + "\n"
	}
	mail.Plain().Set(body)

	if len(msg.PDF) > 0 {
		name := msg.FileName
		if name == "" {
			name = msg.QuoteNumber + ".pdf"
		}
		mail.AttachWithMimeType(name, bytes.NewReader(msg.PDF), "application/pdf")
	}

	return mail, nil
}
