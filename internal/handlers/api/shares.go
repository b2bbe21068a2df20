package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/db"
	"linkshare/internal/metrics"
	"linkshare/internal/middleware"
	"linkshare/internal/models"
)

// ShareHandler manages the shares of links the caller owns.
type ShareHandler struct {
	db *db.DB
}

// NewShareHandler creates a new share handler.
func NewShareHandler(database *db.DB) *ShareHandler {
	return &ShareHandler{db: database}
}

// Create shares one link with one user, or with linkIds/userIds every
// listed link with every listed user.
func (h *ShareHandler) Create(c fiber.Ctx) error {
	var req models.ShareRequest
	if err := decodeBody(c, &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	if req.IsBulk() {
		return h.createBulk(c, &req)
	}
	return h.createOne(c, &req)
}

func (h *ShareHandler) createOne(c fiber.Ctx, req *models.ShareRequest) error {
	session := middleware.CurrentSession(c)

	linkID := strings.TrimSpace(req.LinkID)
	userID := strings.TrimSpace(req.UserID)
	if linkID == "" || userID == "" || session.Owns(userID) {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	share, err := h.db.CreateShare(c.Context(), session.UserID, linkID, userID, req.IsWritable)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateShare):
			return jsonError(c, fiber.StatusConflict, "Share already exists.")
		case errors.Is(err, db.ErrLinkNotFound):
			return jsonError(c, fiber.StatusNotFound, "No link shared.")
		case errors.Is(err, db.ErrUserNotFound), errors.Is(err, db.ErrSelfShare):
			return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
		}
		return serverError(c, "failed to create share", err)
	}

	metrics.RecordSharesCreated("single", 1)
	return jsonCreated(c, "Share created successfully.", share)
}

func (h *ShareHandler) createBulk(c fiber.Ctx, req *models.ShareRequest) error {
	session := middleware.CurrentSession(c)

	if !req.IsWellFormedBulk() {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	pairs := models.ExpandSharePairs(req.LinkIDs, req.UserIDs)
	shares, err := h.db.CreateShares(c.Context(), session.UserID, pairs, req.IsWritable)
	if err != nil {
		return serverError(c, "failed to create shares", err)
	}

	metrics.RecordSharesCreated("bulk", len(shares))
	return jsonCreated(c, "Shares created successfully.", shares)
}

// ListForLink returns the shares of a link the caller owns.
func (h *ShareHandler) ListForLink(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	shares, err := h.db.ListSharesForLink(c.Context(), c.Params("linkId"), session.UserID)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Link not found.")
		}
		return serverError(c, "failed to list shares", err)
	}

	return jsonSuccess(c, msgSuccess, shares)
}

// Update changes whether a share grants write access.
func (h *ShareHandler) Update(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	var req models.ShareUpdateRequest
	if err := decodeBody(c, &req); err != nil || req.IsWritable == nil {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	share, err := h.db.UpdateShare(c.Context(), c.Params("id"), session.UserID, *req.IsWritable)
	if err != nil {
		if errors.Is(err, db.ErrShareNotFound) {
			return jsonError(c, fiber.StatusNotFound, "No share updated.")
		}
		return serverError(c, "failed to update share", err)
	}

	return jsonSuccess(c, "Share updated successfully.", share)
}

// Delete revokes a share.
func (h *ShareHandler) Delete(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	if err := h.db.DeleteShare(c.Context(), c.Params("id"), session.UserID); err != nil {
		if errors.Is(err, db.ErrShareNotFound) {
			return jsonError(c, fiber.StatusNotFound, "No share removed.")
		}
		return serverError(c, "failed to delete share", err)
	}

	return jsonSuccess(c, "Share removed successfully.", nil)
}
