package service

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/safarhub/backoffice/internal/config"
)

// Mailer emails rendered ledger exports to agency contacts
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a mailer from SMTP settings
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether SMTP settings are present
func (m *Mailer) Configured() bool {
	return m.cfg.Host != ""
}

// SendExport delivers an export file as an attachment
func (m *Mailer) SendExport(to, subject, bodyText string, file *ExportFile) error {
	if !m.Configured() {
		return fmt.Errorf("SMTP is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", bodyText)
	msg.Attach(file.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(file.Data)
		return err
	}))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send export email: %w", err)
	}
	return nil
}
