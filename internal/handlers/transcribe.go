package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/speech-gateway/internal/fetch"
	"github.com/codebuildervaibhav/speech-gateway/internal/types"
)

// Processor runs the transcription pipeline for one audio URL
type Processor interface {
	Process(ctx context.Context, audioURL string) (*types.TranscriptionResult, error)
}

// TranscribeHandler handles POST /transcribe
type TranscribeHandler struct {
	pipeline Processor
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(pipeline Processor) *TranscribeHandler {
	return &TranscribeHandler{pipeline: pipeline}
}

// Handle validates the request and runs the pipeline. Validation and fetch
// failures map to 400; anything unexpected bubbles up to the 500 handler.
func (h *TranscribeHandler) Handle(c *fiber.Ctx) error {
	var req types.TranscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	if strings.TrimSpace(req.AudioURL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio URL provided",
			"code":  "ERR_NO_URL",
		})
	}

	result, err := h.pipeline.Process(c.UserContext(), req.AudioURL)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			log.Printf("Audio download failed: %v", fetchErr)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fetchErr.Error(),
				"code":  "ERR_DOWNLOAD_FAILED",
			})
		}
		return err
	}

	return c.JSON(result)
}
