package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/db"
	"linkshare/internal/middleware"
)

// UserHandler lists share targets and deletes the caller's account.
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// List returns every user other than the caller.
func (h *UserHandler) List(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	users, err := h.db.ListOtherUsers(c.Context(), session.UserID)
	if err != nil {
		return serverError(c, "failed to list users", err)
	}
	return jsonSuccess(c, msgSuccess, users)
}

// DeleteMe deletes the caller's account with its links and shares, and
// clears the refresh cookie.
func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	if err := h.db.DeleteUser(c.Context(), session.UserID); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "No user removed.")
		}
		return serverError(c, "failed to delete user", err)
	}

	clearRefreshCookie(c)
	return jsonSuccess(c, "User removed successfully.", nil)
}
