package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/auth"
	"linkshare/internal/db"
	"linkshare/internal/metrics"
	"linkshare/internal/models"
	"linkshare/internal/validation"
)

// AuthHandler handles sign-up, sign-in, refresh and sign-out.
type AuthHandler struct {
	db     *db.DB
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(database *db.DB, tokens *auth.TokenService, hasher *auth.PasswordHasher) *AuthHandler {
	return &AuthHandler{db: database, tokens: tokens, hasher: hasher}
}

// SignUp creates an account. The password hash is never returned.
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var body models.CredentialsRequest
	if err := decodeBody(c, &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	email, password := validation.NormalizeCredentials(body.Email, body.Password)
	if password == "" || !validation.ValidateEmail(email) {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	hash, err := h.hasher.HashPassword(password)
	if err != nil {
		return serverError(c, "failed to hash password", err)
	}

	user, err := h.db.CreateUser(c.Context(), email, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return jsonError(c, fiber.StatusConflict, "User already exists.")
		}
		return serverError(c, "failed to create user", err)
	}

	return jsonCreated(c, "User created successfully.", user)
}

// SignIn verifies credentials, returns an access token and sets the refresh
// cookie. Unknown email and wrong password produce the same response.
func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var body models.CredentialsRequest
	if err := decodeBody(c, &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	email, password := validation.NormalizeCredentials(body.Email, body.Password)
	if email == "" || password == "" {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	user, err := h.db.GetUserByEmail(c.Context(), email)
	switch {
	case errors.Is(err, db.ErrUserNotFound):
		h.hasher.CheckPassword("", password)
		metrics.RecordSignIn("failure")
		return jsonError(c, fiber.StatusUnauthorized, msgSignInFailed)
	case err != nil:
		return serverError(c, "failed to look up user", err)
	}

	if !h.hasher.CheckPassword(user.PasswordHash, password) {
		metrics.RecordSignIn("failure")
		return jsonError(c, fiber.StatusUnauthorized, msgSignInFailed)
	}

	session := &models.Session{UserID: user.ID, Email: user.Email}
	accessToken, err := h.tokens.IssueAccess(session)
	if err != nil {
		return serverError(c, "failed to issue access token", err)
	}
	refreshToken, err := h.tokens.IssueRefresh(session)
	if err != nil {
		return serverError(c, "failed to issue refresh token", err)
	}

	metrics.RecordSignIn("success")
	setRefreshCookie(c, refreshToken, h.tokens.RefreshTTL())
	return jsonSuccess(c, "Signed in successfully.", models.SignInResponse{
		AccessToken: accessToken,
		ID:          user.ID,
		Email:       user.Email,
	})
}

// Refresh mints a new access token from the refresh cookie after checking
// the account still exists.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	session, err := h.tokens.VerifyRefresh(c.Cookies(refreshCookie))
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, msgRefreshFail)
	}

	user, err := h.db.GetUserByID(c.Context(), session.UserID)
	switch {
	case errors.Is(err, db.ErrUserNotFound):
		clearRefreshCookie(c)
		return jsonError(c, fiber.StatusUnauthorized, msgRefreshFail)
	case err != nil:
		return serverError(c, "failed to look up user", err)
	}

	accessToken, err := h.tokens.IssueAccess(&models.Session{UserID: user.ID, Email: user.Email})
	if err != nil {
		return serverError(c, "failed to issue access token", err)
	}

	return jsonSuccess(c, "Refreshed successfully.", models.SignInResponse{
		AccessToken: accessToken,
		ID:          user.ID,
		Email:       user.Email,
	})
}

// SignOut clears the refresh cookie.
func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	clearRefreshCookie(c)
	return jsonSuccess(c, "Signed out successfully.", nil)
}
