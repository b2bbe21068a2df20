package api

import (
	"github.com/gofiber/fiber/v3"

	"linkshare/internal/db"
)

// CategoryHandler serves the category reference list.
type CategoryHandler struct {
	db *db.DB
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(database *db.DB) *CategoryHandler {
	return &CategoryHandler{db: database}
}

// List returns every category ordered by name.
func (h *CategoryHandler) List(c fiber.Ctx) error {
	categories, err := h.db.ListCategories(c.Context())
	if err != nil {
		return serverError(c, "failed to list categories", err)
	}
	return jsonSuccess(c, msgSuccess, categories)
}
