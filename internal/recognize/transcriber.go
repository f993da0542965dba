package recognize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Recognizer submits a recording to a speech-to-text service
type Recognizer interface {
	Recognize(ctx context.Context, rec *Recording) (string, error)
}

// Transcriber turns a waveform file into text. Every failure mode maps to a
// human-readable string: transcription failure is data the caller receives,
// not a pipeline fault.
type Transcriber struct {
	recognizer  Recognizer
	calibration time.Duration
}

// NewTranscriber creates a transcriber that calibrates ambient noise over the
// given leading window before recording.
func NewTranscriber(recognizer Recognizer, calibration time.Duration) *Transcriber {
	return &Transcriber{recognizer: recognizer, calibration: calibration}
}

// Transcribe processes the audio file at path and returns transcript text or
// one of the explanatory fallback strings.
func (t *Transcriber) Transcribe(ctx context.Context, path string) string {
	rec, err := Record(path, t.calibration)
	if err != nil {
		log.Printf("Could not read audio for recognition: %v", err)
		return fmt.Sprintf("Error during transcription: %v", err)
	}

	log.Printf("Calibrated ambient noise over %.1fs (rms %.4f), recorded %.1fs of signal",
		t.calibration.Seconds(), rec.AmbientRMS, rec.Duration().Seconds())

	text, err := t.recognizer.Recognize(ctx, rec)
	if err == nil {
		return text
	}

	var reqErr *RequestError
	switch {
	case errors.Is(err, ErrUnintelligible):
		return "Could not understand the audio"
	case errors.As(err, &reqErr):
		return fmt.Sprintf("Could not request results from speech recognition service: %v", reqErr.Err)
	default:
		return fmt.Sprintf("Error during transcription: %v", err)
	}
}
