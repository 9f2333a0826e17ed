// internal/services/mailer.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/spicekart/backoffice/internal/config"
)

// Mailer delivers one-time codes to a client inbox.
type Mailer interface {
	SendOtp(to, name, code string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	config *config.EmailConfig
}

func NewSMTPMailer(cfg *config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your verification code is:</p>
	<h1 style="letter-spacing: 4px;">{{.Code}}</h1>
	<p>The code expires in {{.TTLMinutes}} minutes. If you did not request it, you can ignore this email.</p>
	<p>Best regards,<br>{{.FromName}} Team</p>
</body>
</html>`))

func (m *SMTPMailer) SendOtp(to, name, code string) error {
	data := map[string]interface{}{
		"Name":       name,
		"Code":       code,
		"TTLMinutes": 10,
		"FromName":   m.config.FromName,
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return m.sendEmail(to, "Your verification code", buf.String())
}

func (m *SMTPMailer) sendEmail(to, subject, body string) error {
	if m.config.SMTPUsername == "" {
		// Email not configured, just log
		logrus.WithField("to", to).Info("Email delivery skipped: SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", m.config.SMTPHost, m.config.SMTPPort)
	return smtp.SendMail(addr, auth, m.config.FromEmail, []string{to}, msg)
}
