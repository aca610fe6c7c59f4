// Package mail sends transactional email over SMTP.
//
// The mailer is a no-op unless an SMTP host is configured, which lets
// development setups run without a mail server. Callers should check
// Configured before relying on delivery.
package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/dndsfx/soundboard/internal/config"
)

// Mailer delivers plain-text email via the configured SMTP server.
type Mailer struct {
	config config.Mail
}

// NewMailer creates a mailer from SMTP configuration.
func NewMailer(cfg config.Mail) *Mailer {
	return &Mailer{config: cfg}
}

// Configured reports whether an SMTP server has been set up.
func (m *Mailer) Configured() bool {
	return m.config.Host != ""
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("mail server is not configured")
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return fmt.Errorf("setting sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.config.Port),
	}
	if m.config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.config.Username),
			gomail.WithPassword(m.config.Password),
		)
	}
	if m.config.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(m.config.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	return nil
}
