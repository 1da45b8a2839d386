package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer forwards contact messages to the studio inbox.
type SMTPMailer struct {
	sender Sender
	from   string
	to     string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("contact recipient is required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewSMTPMailerWithSender(dialer, cfg.From, cfg.To), nil
}

func NewSMTPMailerWithSender(sender Sender, from, to string) *SMTPMailer {
	return &SMTPMailer{sender: sender, from: from, to: to}
}

func (m *SMTPMailer) Send(ctx context.Context, msg domain.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildMessage(m.from, m.to, msg)
	if err := m.sender.DialAndSend(message); err != nil {
		slog.ErrorContext(ctx, "Failed to send contact email", "to", m.to, "error", err)
		return fmt.Errorf("smtp send: %w", err)
	}

	slog.InfoContext(ctx, "Contact email sent", "to", m.to, "name", msg.Name)
	return nil
}

func buildMessage(from, to string, msg domain.ContactMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	if msg.Email != "" {
		m.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	}
	m.SetHeader("Subject", subject(msg))
	m.SetBody("text/plain", body(msg))
	return m
}

func subject(msg domain.ContactMessage) string {
	if msg.Category != "" {
		return fmt.Sprintf("Нова заявка: %s (%s)", msg.Name, msg.Category)
	}
	return fmt.Sprintf("Нова заявка: %s", msg.Name)
}

func body(msg domain.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ім'я: %s\n", msg.Name)
	if msg.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	}
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", msg.Phone)
	}
	if msg.Category != "" {
		fmt.Fprintf(&b, "Категорія: %s\n", msg.Category)
	}
	if !msg.ReceivedAt.IsZero() {
		fmt.Fprintf(&b, "Отримано: %s\n", msg.ReceivedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}
