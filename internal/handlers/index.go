package handlers

import "github.com/gofiber/fiber/v2"

// Endpoints is the public surface, shared by the index page and the 404 body
var Endpoints = []string{
	"GET  /",
	"GET  /health",
	"GET  /logs",
	"GET  /transcriptions",
	"POST /transcribe",
}

// Index handles GET / with a service descriptor and example usage
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":   ServiceName,
		"endpoints": Endpoints,
		"example": fiber.Map{
			"method": "POST",
			"path":   "/transcribe",
			"body":   fiber.Map{"audio_url": "https://example.com/recording.aac"},
		},
	})
}

// NotFound handles unknown routes
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":               "Route not found",
		"available_endpoints": Endpoints,
	})
}
