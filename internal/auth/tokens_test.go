package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshare/internal/config"
	"linkshare/internal/models"
)

func newTestService(now time.Time) *TokenService {
	s := NewTokenService(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     24 * time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	})
	s.now = func() time.Time { return now }
	return s
}

var session = &models.Session{UserID: "0123456789abcdef0123456789abcdef", Email: "alice@example.com"}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newTestService(time.Now())

	token, err := s.IssueAccess(session)
	require.NoError(t, err)

	got, err := s.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	s := newTestService(time.Now())

	token, err := s.IssueRefresh(session)
	require.NoError(t, err)

	got, err := s.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestTokens_AreNotInterchangeable(t *testing.T) {
	s := newTestService(time.Now())

	access, err := s.IssueAccess(session)
	require.NoError(t, err)
	refresh, err := s.IssueRefresh(session)
	require.NoError(t, err)

	_, err = s.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(issuedAt)

	token, err := s.IssueAccess(session)
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	_, err = s.VerifyAccess(token)
	assert.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	_, err = s.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Rejects(t *testing.T) {
	now := time.Now()
	s := newTestService(now)

	other := newTestService(now)
	other.accessSecret = []byte("someone-else")
	forged, err := other.IssueAccess(session)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{Audience: jwt.ClaimStrings{audienceAccess}},
	}).SignedString(s.accessSecret)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceAccess},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceAccess},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(s.accessSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", forged},
		{"missing expiry", noExpiry},
		{"none algorithm", noneAlg},
		{"missing user id", noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.VerifyAccess(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
