package handlers

import (
	"runtime"

	"github.com/gofiber/fiber/v2"
)

// ServiceName identifies this service in health and descriptor responses
const ServiceName = "speech-to-text"

// HealthHandler handles GET /health. It always answers 200: a missing
// Firestore connection degrades the service, it does not take it down.
type HealthHandler struct {
	firestoreConnected bool
	environment        string
}

// NewHealthHandler creates a health handler reflecting startup state
func NewHealthHandler(firestoreConnected bool, environment string) *HealthHandler {
	return &HealthHandler{
		firestoreConnected: firestoreConnected,
		environment:        environment,
	}
}

// Handle reports service health
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"
	if !h.firestoreConnected {
		status = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status":              status,
		"service":             ServiceName,
		"firestore_connected": h.firestoreConnected,
		"go_version":          runtime.Version(),
		"environment":         h.environment,
	})
}
