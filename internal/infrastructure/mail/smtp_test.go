package mail

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func sampleMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:       "Olena",
		Email:      "olena@example.com",
		Phone:      "+380501234567",
		Category:   "Весілля",
		Message:    "Хочемо зйомку у червні",
		ReceivedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewSMTPMailerWithSender(sender, "site@studio.example", "owner@studio.example")

	err := mailer.Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"site@studio.example"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@studio.example"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Нова заявка: Olena (Весілля)"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("Reply-To"), 1)
	assert.Contains(t, msg.GetHeader("Reply-To")[0], "olena@example.com")
}

func TestSMTPMailer_SendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	mailer := NewSMTPMailerWithSender(sender, "a@b.c", "d@e.f")

	err := mailer.Send(context.Background(), sampleMessage())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPMailer_CanceledContext(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewSMTPMailerWithSender(sender, "a@b.c", "d@e.f")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mailer.Send(ctx, sampleMessage())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{To: "owner@studio.example"})
	assert.Error(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err)

	mailer, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@studio.example", To: "owner@studio.example"})
	require.NoError(t, err)
	assert.Equal(t, "bot@studio.example", mailer.from)
}

func TestBody(t *testing.T) {
	text := body(sampleMessage())

	assert.True(t, strings.HasPrefix(text, "Ім'я: Olena\n"))
	assert.Contains(t, text, "Телефон: +380501234567")
	assert.Contains(t, text, "Отримано: 2025-03-01T10:00:00Z")
	assert.True(t, strings.HasSuffix(text, "Хочемо зйомку у червні\n"))

	minimal := body(domain.ContactMessage{Name: "A", Phone: "123456", Message: "hi"})
	assert.NotContains(t, minimal, "Email:")
	assert.NotContains(t, minimal, "Категорія:")
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	mailer := NewLogMailer(slog.New(slog.NewTextHandler(&buf, nil)))

	err := mailer.Send(context.Background(), sampleMessage())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Contact message received")
	assert.Contains(t, buf.String(), "olena@example.com")
}
