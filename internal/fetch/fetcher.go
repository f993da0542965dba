package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codebuildervaibhav/speech-gateway/internal/audio"
)

// Error is returned when the audio download fails. Handlers map it to a 400
// since the fault lies with the caller-supplied URL.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to download audio from %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher downloads remote audio files into the temp directory
type Fetcher struct {
	client  *http.Client
	tempDir string
}

// NewFetcher creates a fetcher with a bounded request timeout
func NewFetcher(tempDir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		tempDir: tempDir,
	}
}

// Fetch downloads the audio at audioURL to a uniquely named temp file and
// returns its path. On any failure the partial file is removed and a typed
// *Error is returned, so the caller never has an artifact to release.
func (f *Fetcher) Fetch(ctx context.Context, audioURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", &Error{URL: audioURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: audioURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: audioURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	tempPath := filepath.Join(f.tempDir, uuid.New().String()+suffixFor(audioURL))

	out, err := os.Create(tempPath)
	if err != nil {
		return "", &Error{URL: audioURL, Err: err}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tempPath)
		return "", &Error{URL: audioURL, Err: err}
	}

	if err := out.Close(); err != nil {
		os.Remove(tempPath)
		return "", &Error{URL: audioURL, Err: err}
	}

	return tempPath, nil
}

// suffixFor picks a file suffix from the URL path so ffmpeg can sniff the
// container. Unknown or missing extensions fall back to .aac, the format the
// mobile clients record in.
func suffixFor(audioURL string) string {
	u, err := url.Parse(audioURL)
	if err != nil {
		return ".aac"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if audio.ValidateAudioFormat(ext) {
		return ext
	}
	return ".aac"
}
