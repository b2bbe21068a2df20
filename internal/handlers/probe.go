package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/models"
)

// readinessTimeout bounds the database ping behind /readyz.
const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles health probe endpoints.
type ProbeHandler struct {
	db Pinger
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(database Pinger) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness handles the /healthz endpoint.
// Returns 200 OK if the process is serving requests.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(models.Envelope{Message: "ok"})
}

// Readiness handles the /readyz endpoint.
// Returns 200 OK if the store is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.Envelope{Message: "database unavailable"})
	}

	return c.JSON(models.Envelope{Message: "ok"})
}
