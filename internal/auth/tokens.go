// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"linkshare/internal/config"
	"linkshare/internal/models"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Token audiences keep access and refresh tokens from standing in for each other.
const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

// Claims is the JWT payload of both token kinds.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens with HS256.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenService creates a TokenService from the token settings in cfg.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		now:           time.Now,
	}
}

// RefreshTTL is the refresh token lifetime, used for the cookie max age.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccess returns a signed access token for session.
func (s *TokenService) IssueAccess(session *models.Session) (string, error) {
	return s.issue(session, audienceAccess, s.accessSecret, s.accessTTL)
}

// IssueRefresh returns a signed refresh token for session.
func (s *TokenService) IssueRefresh(session *models.Session) (string, error) {
	return s.issue(session, audienceRefresh, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess returns the session carried by a valid access token.
func (s *TokenService) VerifyAccess(token string) (*models.Session, error) {
	return s.verify(token, audienceAccess, s.accessSecret)
}

// VerifyRefresh returns the session carried by a valid refresh token.
func (s *TokenService) VerifyRefresh(token string) (*models.Session, error) {
	return s.verify(token, audienceRefresh, s.refreshSecret)
}

func (s *TokenService) issue(session *models.Session, audience string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: session.UserID,
		Email:  session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", audience, err)
	}
	return signed, nil
}

func (s *TokenService) verify(tokenStr, audience string, secret []byte) (*models.Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &models.Session{UserID: claims.UserID, Email: claims.Email}, nil
}
