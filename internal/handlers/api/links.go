package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/access"
	"linkshare/internal/db"
	"linkshare/internal/middleware"
	"linkshare/internal/models"
	"linkshare/internal/validation"
)

// LinkHandler handles link CRUD operations via JSON API.
type LinkHandler struct {
	db *db.DB
}

// NewLinkHandler creates a new API link handler.
func NewLinkHandler(database *db.DB) *LinkHandler {
	return &LinkHandler{db: database}
}

// List returns the caller's links for one mode, optionally filtered by
// category and name.
func (h *LinkHandler) List(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	mode := c.Query("mode", models.ModeOwn)
	if !models.IsValidMode(mode) {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	links, err := h.db.ListLinks(c.Context(), models.LinkFilter{
		UserID:     session.UserID,
		Mode:       mode,
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		Name:       strings.TrimSpace(c.Query("name")),
	})
	if err != nil {
		return serverError(c, "failed to list links", err)
	}

	perm := access.ForMode(mode).String()
	for i := range links {
		links[i].Access = perm
	}

	return jsonSuccess(c, msgSuccess, links)
}

// Get returns one link the caller may read. Links the caller cannot read
// are reported as not found.
func (h *LinkHandler) Get(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	link, grant, err := h.db.GetLinkForUser(c.Context(), c.Params("id"), session.UserID)
	if err != nil && !errors.Is(err, db.ErrLinkNotFound) {
		return serverError(c, "failed to fetch link", err)
	}

	perm := access.Resolve(session.UserID, link, grant)
	if !perm.CanRead() {
		return jsonError(c, fiber.StatusNotFound, "Link not found.")
	}

	link.Access = perm.String()
	return jsonSuccess(c, msgSuccess, link)
}

// Create creates a link owned by the caller.
func (h *LinkHandler) Create(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	req, ok := parseLinkRequest(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	link, err := h.db.CreateLink(c.Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrCategoryNotFound):
			return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
		case errors.Is(err, db.ErrUserNotFound):
			return jsonError(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return serverError(c, "failed to create link", err)
	}

	link.Access = access.Owner.String()
	return jsonCreated(c, "Link created successfully.", link)
}

// Update rewrites a link the caller owns or holds a writable share on.
func (h *LinkHandler) Update(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	req, ok := parseLinkRequest(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	link, err := h.db.UpdateLink(c.Context(), c.Params("id"), session.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrCategoryNotFound):
			return jsonError(c, fiber.StatusBadRequest, msgInvalidInput)
		case errors.Is(err, db.ErrLinkNotFound):
			return jsonError(c, fiber.StatusNotFound, "No link updated.")
		}
		return serverError(c, "failed to update link", err)
	}

	return jsonSuccess(c, "Link updated successfully.", link)
}

// Delete removes a link the caller owns.
func (h *LinkHandler) Delete(c fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	if err := h.db.DeleteLink(c.Context(), c.Params("id"), session.UserID); err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "No link removed.")
		}
		return serverError(c, "failed to delete link", err)
	}

	return jsonSuccess(c, "Link removed successfully.", nil)
}

// parseLinkRequest decodes and validates a link body.
func parseLinkRequest(c fiber.Ctx) (*models.LinkRequest, bool) {
	var req models.LinkRequest
	if err := decodeBody(c, &req); err != nil {
		return nil, false
	}

	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)

	if req.CategoryID == "" || !validation.ValidateName(req.Name) {
		return nil, false
	}
	if valid, _ := validation.ValidateURL(req.URL); !valid {
		return nil, false
	}
	return &req, true
}
