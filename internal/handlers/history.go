package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speech-gateway/internal/types"
)

// HistoryLister reads back the local request-history log
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]types.HistoryEntry, error)
}

// HistoryHandler handles GET /transcriptions
type HistoryHandler struct {
	history HistoryLister
}

// NewHistoryHandler creates a history handler
func NewHistoryHandler(history HistoryLister) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Handle returns the most recent transcription records
func (h *HistoryHandler) Handle(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.history.List(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}

	return c.JSON(fiber.Map{"transcriptions": entries})
}
