package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Eliahhango/Civil-web/internal/config"
	"github.com/Eliahhango/Civil-web/internal/models"
)

// Mailer sends plain SMTP mail. A nil Mailer drops messages, so the server
// can run without mail credentials.
type Mailer struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

func New(cfg *config.Config) *Mailer {
	if cfg.SMTP_HOST == "" {
		return nil
	}
	return &Mailer{
		Host:     cfg.SMTP_HOST,
		Port:     cfg.SMTP_PORT,
		User:     cfg.SMTP_USER,
		Password: cfg.SMTP_PASSWORD,
		To:       cfg.CONTACT_RECIPIENT,
	}
}

// NotifyContact mails the configured recipient about a new submission.
func (m *Mailer) NotifyContact(contact *models.Contact) error {
	if m == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.User)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: New Contact Form Submission from %s\r\n", contact.Name)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", contact.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", contact.Message)

	addr := net.JoinHostPort(m.Host, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Password, m.Host)
	if err := smtp.SendMail(addr, auth, m.User, []string{m.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	return nil
}
