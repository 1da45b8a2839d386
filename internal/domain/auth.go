package domain

import (
	"context"
	"time"
)

type Credentials struct {
	Email    string
	Password string
}

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthProvider signs administrators in and resolves bearer tokens back to
// sessions. Implementations return ErrInvalidCredentials or
// ErrUnauthenticated for rejected input.
type AuthProvider interface {
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	CurrentSession(ctx context.Context, token string) (*Session, error)
}
