package mail

import (
	"context"
	"log/slog"

	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// LogMailer writes contact messages to the log. Used when SMTP is not
// configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg domain.ContactMessage) error {
	m.logger.InfoContext(ctx, "Contact message received",
		"name", msg.Name,
		"email", msg.Email,
		"phone", msg.Phone,
		"category", msg.Category,
		"message", msg.Message,
	)
	return nil
}
