package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Normalizer converts downloaded audio to the waveform format the speech
// recognizer expects: mono 16-bit PCM WAV at a fixed sample rate.
type Normalizer struct {
	tempDir    string
	sampleRate int
}

// NewNormalizer creates a normalizer writing into tempDir
func NewNormalizer(tempDir string, sampleRate int) *Normalizer {
	return &Normalizer{tempDir: tempDir, sampleRate: sampleRate}
}

// Normalize converts inputPath to a freshly named WAV file and returns its
// path. Errors are reported to the caller, which is expected to fall back to
// the raw download rather than fail the request.
func (n *Normalizer) Normalize(ctx context.Context, inputPath string) (string, error) {
	outputPath := filepath.Join(n.tempDir, fmt.Sprintf("normalized_%s.wav", uuid.New().String()))

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inputPath,
		"-ar", strconv.Itoa(n.sampleRate), // sample rate
		"-ac", "1", // mono
		"-c:a", "pcm_s16le", // 16-bit PCM
		"-y", // overwrite output
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %v\nOutput: %s", err, string(output))
	}

	return outputPath, nil
}

// ValidateAudioFormat checks if the file format is supported
func ValidateAudioFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	supportedFormats := []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".webm", ".aac", ".wma"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
