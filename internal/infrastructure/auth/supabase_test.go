package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"
)

type fakeGoTrue struct {
	users    map[string]string
	tokens   map[string]types.User
	signInAt time.Time
}

func (f *fakeGoTrue) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	if f.users[email] != password {
		return nil, errors.New("invalid_grant: Invalid login credentials")
	}
	resp := &types.TokenResponse{}
	resp.AccessToken = "token-for-" + email
	resp.ExpiresAt = f.signInAt.Add(time.Hour).Unix()
	resp.User = types.User{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555"), Email: email}
	return resp, nil
}

func (f *fakeGoTrue) UserForToken(token string) (*types.UserResponse, error) {
	user, ok := f.tokens[token]
	if !ok {
		return nil, errors.New("invalid JWT")
	}
	return &types.UserResponse{User: user}, nil
}

func TestSupabaseProvider_SignIn(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	client := &fakeGoTrue{
		users:    map[string]string{"owner@studio.example": "pw", "guest@studio.example": "pw"},
		signInAt: now,
	}
	provider := NewSupabaseProvider(client, []string{"Owner@Studio.example"})
	ctx := context.Background()

	session, err := provider.SignIn(ctx, domain.Credentials{Email: "owner@studio.example", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "token-for-owner@studio.example", session.Token)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", session.UserID)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)

	_, err = provider.SignIn(ctx, domain.Credentials{Email: "owner@studio.example", Password: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = provider.SignIn(ctx, domain.Credentials{Email: "guest@studio.example", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSupabaseProvider_CurrentSession(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("supabase-jwt-secret"))
	require.NoError(t, err)

	client := &fakeGoTrue{tokens: map[string]types.User{
		token:         {ID: uuid.New(), Email: "owner@studio.example"},
		"guest-token": {ID: uuid.New(), Email: "guest@studio.example"},
	}}
	provider := NewSupabaseProvider(client, []string{"owner@studio.example"})
	ctx := context.Background()

	session, err := provider.CurrentSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "owner@studio.example", session.Email)
	assert.Equal(t, exp, session.ExpiresAt)

	_, err = provider.CurrentSession(ctx, "guest-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = provider.CurrentSession(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = provider.CurrentSession(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSupabaseProvider_EmptyAdminListAllowsAll(t *testing.T) {
	client := &fakeGoTrue{users: map[string]string{"anyone@studio.example": "pw"}, signInAt: time.Now()}
	provider := NewSupabaseProvider(client, nil)

	_, err := provider.SignIn(context.Background(), domain.Credentials{Email: "anyone@studio.example", Password: "pw"})

	assert.NoError(t, err)
}
