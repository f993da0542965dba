package recognize

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testRecording() *Recording {
	return &Recording{
		Samples:     []int{0, 100, -100, 200},
		SampleRate:  16000,
		NumChannels: 1,
	}
}

func TestRecognizePicksBestConfidence(t *testing.T) {
	var gotContentType, gotKey, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotKey = r.URL.Query().Get("key")
		gotLang = r.URL.Query().Get("lang")
		// the service emits an empty first line before the real result
		w.Write([]byte(`{"result":[]}` + "\n"))
		w.Write([]byte(`{"result":[{"alternative":[{"transcript":"hello word","confidence":0.71},{"transcript":"hello world","confidence":0.94}],"final":true}],"result_index":0}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "en-US")
	text, err := c.Recognize(context.Background(), testRecording())
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "hello world" {
		t.Errorf("transcript = %q, want best-confidence alternative", text)
	}
	if gotContentType != "audio/l16; rate=16000" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotKey != "test-key" || gotLang != "en-US" {
		t.Errorf("query params key=%q lang=%q", gotKey, gotLang)
	}
}

func TestRecognizeNoConfidenceFallsBackToFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[{"alternative":[{"transcript":"first"},{"transcript":"second"}]}]}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "en-US")
	text, err := c.Recognize(context.Background(), testRecording())
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "first" {
		t.Errorf("transcript = %q, want %q", text, "first")
	}
}

func TestRecognizeUnintelligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "en-US")
	_, err := c.Recognize(context.Background(), testRecording())
	if !errors.Is(err, ErrUnintelligible) {
		t.Fatalf("expected ErrUnintelligible, got %v", err)
	}
}

func TestRecognizeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "en-US")
	_, err := c.Recognize(context.Background(), testRecording())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if !strings.Contains(reqErr.Error(), "403") {
		t.Errorf("error should embed the status: %v", reqErr)
	}
}

func TestRecognizeNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "", "en-US")
	_, err := c.Recognize(context.Background(), testRecording())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}

func TestRecognizeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "en-US")
	_, err := c.Recognize(context.Background(), testRecording())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}
