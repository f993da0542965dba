package recognize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrUnintelligible is returned when the service processed the audio but
// produced no transcript.
var ErrUnintelligible = errors.New("speech was unintelligible")

// RequestError means the recognition service itself could not be reached or
// answered with a failure (quota, network, protocol).
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("recognition request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client submits recorded PCM to the Google web speech API
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	language   string
}

// NewClient creates a recognition client for the given endpoint
func NewClient(endpoint, apiKey, language string) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		apiKey:     apiKey,
		language:   language,
	}
}

// response shapes for the service's line-delimited JSON
type recognitionResponse struct {
	Result []struct {
		Alternative []alternative `json:"alternative"`
	} `json:"result"`
}

type alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Recognize submits the recording and returns the best transcript. The
// service streams one JSON object per line; the first line carrying
// alternatives wins, best confidence first.
func (c *Client) Recognize(ctx context.Context, rec *Recording) (string, error) {
	query := url.Values{}
	query.Set("client", "chromium")
	query.Set("lang", c.language)
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?"+query.Encode(), bytes.NewReader(rec.PCMBytes()))
	if err != nil {
		return "", &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", rec.SampleRate))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var parsed recognitionResponse
		if err := json.Unmarshal(line, &parsed); err != nil {
			return "", &RequestError{Err: fmt.Errorf("malformed response: %w", err)}
		}

		for _, result := range parsed.Result {
			if best := bestAlternative(result.Alternative); best != nil {
				return best.Transcript, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &RequestError{Err: err}
	}

	return "", ErrUnintelligible
}

// bestAlternative picks the highest-confidence transcript, falling back to
// the first entry when the service omits confidence scores
func bestAlternative(alts []alternative) *alternative {
	var best *alternative
	for i := range alts {
		if alts[i].Transcript == "" {
			continue
		}
		if best == nil || alts[i].Confidence > best.Confidence {
			best = &alts[i]
		}
	}
	return best
}
