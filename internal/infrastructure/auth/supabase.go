package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// GoTrueClient is the part of the Supabase auth API used by SupabaseProvider.
type GoTrueClient interface {
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	UserForToken(token string) (*types.UserResponse, error)
}

type gotrueAdapter struct {
	client gotrue.Client
}

// NewGoTrueClient adapts a gotrue.Client (for example supabase.Client.Auth).
func NewGoTrueClient(client gotrue.Client) GoTrueClient {
	return gotrueAdapter{client: client}
}

func (a gotrueAdapter) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	return a.client.SignInWithEmailPassword(email, password)
}

func (a gotrueAdapter) UserForToken(token string) (*types.UserResponse, error) {
	return a.client.WithToken(token).GetUser()
}

// SupabaseProvider signs administrators in through Supabase Auth. When the
// admin list is empty every Supabase user of the project is an administrator.
type SupabaseProvider struct {
	client GoTrueClient
	admins map[string]bool
	now    func() time.Time
}

func NewSupabaseProvider(client GoTrueClient, adminEmails []string) *SupabaseProvider {
	admins := make(map[string]bool)
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = true
		}
	}
	if len(admins) == 0 {
		slog.Warn("ADMIN_EMAILS is empty, every Supabase user can manage the portfolio")
	}

	return &SupabaseProvider{client: client, admins: admins, now: time.Now}
}

func (p *SupabaseProvider) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	resp, err := p.client.SignInWithEmailPassword(strings.TrimSpace(creds.Email), creds.Password)
	if err != nil {
		slog.WarnContext(ctx, "Supabase sign in failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if !p.isAdmin(resp.User.Email) {
		slog.WarnContext(ctx, "Sign in rejected for non-admin user", "email", resp.User.Email)
		return nil, fmt.Errorf("%w: not an administrator", domain.ErrInvalidCredentials)
	}

	expiresAt := time.Unix(resp.ExpiresAt, 0).UTC()
	if resp.ExpiresAt == 0 {
		expiresAt = p.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}

	return &domain.Session{
		Token:     resp.AccessToken,
		UserID:    resp.User.ID.String(),
		Email:     resp.User.Email,
		ExpiresAt: expiresAt,
	}, nil
}

func (p *SupabaseProvider) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := p.client.UserForToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !p.isAdmin(user.Email) {
		return nil, fmt.Errorf("%w: not an administrator", domain.ErrUnauthenticated)
	}

	session := &domain.Session{
		Token:  token,
		UserID: user.ID.String(),
		Email:  user.Email,
	}

	// Supabase verified the token; the claims are only read for the expiry.
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return session, nil
}

func (p *SupabaseProvider) isAdmin(email string) bool {
	if len(p.admins) == 0 {
		return true
	}
	return p.admins[strings.ToLower(email)]
}
