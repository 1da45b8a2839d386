package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "studio-portfolio"

// HashPassword creates a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters long")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

type LocalConfig struct {
	AdminEmail   string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// LocalProvider authenticates a single administrator configured through the
// environment and issues HS256 session tokens.
type LocalProvider struct {
	email  string
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewLocalProvider(cfg LocalConfig) (*LocalProvider, error) {
	if cfg.AdminEmail == "" || cfg.PasswordHash == "" {
		return nil, errors.New("admin email and password hash are required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}

	return &LocalProvider{
		email:  strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		hash:   []byte(cfg.PasswordHash),
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email != p.email {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(creds.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := p.now()
	expiresAt := now.Add(p.ttl)
	claims := sessionClaims{
		Email: p.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   p.email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &domain.Session{
		Token:     token,
		UserID:    p.email,
		Email:     p.email,
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
	}, nil
}

func (p *LocalProvider) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject != p.email {
		return nil, fmt.Errorf("%w: unknown subject", domain.ErrUnauthenticated)
	}

	return &domain.Session{
		Token:     token,
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
