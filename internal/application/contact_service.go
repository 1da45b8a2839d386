package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
)

// Mailer delivers contact messages to the studio.
type Mailer interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}

type ContactService struct {
	mailer   Mailer
	validate *validator.Validate
	now      func() time.Time
}

func NewContactService(mailer Mailer) *ContactService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ContactService{
		mailer:   mailer,
		validate: v,
		now:      time.Now,
	}
}

// Submit validates msg and hands it to the mailer.
func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := s.validate.Struct(msg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidContact, describeFieldErrors(fieldErrs))
		}
		return fmt.Errorf("failed to validate contact message: %w", err)
	}

	msg.ReceivedAt = s.now().UTC()
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver contact message: %w", err)
	}

	slog.InfoContext(ctx, "Contact message delivered", "category", msg.Category)
	return nil
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", fe.Field(), fieldErrorMessage(fe)))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + strings.ToLower(fe.Param()) + " is empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' tag", fe.Tag())
	}
}
