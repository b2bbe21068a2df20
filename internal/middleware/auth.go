package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/models"
)

// localsUser is the fiber.Ctx locals key holding the *models.Session.
const localsUser = "user"

// TokenVerifier verifies access tokens.
type TokenVerifier interface {
	VerifyAccess(token string) (*models.Session, error)
}

// AuthMiddleware authenticates requests with a bearer access token.
type AuthMiddleware struct {
	tokens TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return unauthorized(c)
	}

	session, err := m.tokens.VerifyAccess(token)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals(localsUser, session)
	return c.Next()
}

// CurrentSession returns the session stored by RequireAuth, or nil.
func CurrentSession(c fiber.Ctx) *models.Session {
	session, _ := c.Locals(localsUser).(*models.Session)
	return session
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.Envelope{Message: "Unauthorized"})
}
