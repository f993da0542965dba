package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestFetchSuccess(t *testing.T) {
	payload := []byte("fake aac bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, 5*time.Second)

	path, err := f.Fetch(context.Background(), srv.URL+"/recording.aac")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("artifact written outside temp dir: %s", path)
	}
	if !strings.HasSuffix(path, ".aac") {
		t.Errorf("expected .aac suffix, got %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("artifact content = %q, want %q", got, payload)
	}
}

func TestFetchUnknownExtensionDefaultsToAAC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)
	path, err := f.Fetch(context.Background(), srv.URL+"/download")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasSuffix(path, ".aac") {
		t.Errorf("expected fallback .aac suffix, got %s", path)
	}
}

func TestFetchNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		dir := t.TempDir()
		f := NewFetcher(dir, 5*time.Second)

		_, err := f.Fetch(context.Background(), srv.URL+"/gone.mp3")
		srv.Close()

		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Fatalf("status %d: expected *fetch.Error, got %v", status, err)
		}
		if !strings.Contains(fetchErr.Error(), "unexpected status") {
			t.Errorf("error should carry the underlying cause: %v", fetchErr)
		}
		if names := listDir(t, dir); len(names) != 0 {
			t.Errorf("status %d: temp dir not empty after failure: %v", status, names)
		}
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	dir := t.TempDir()
	f := NewFetcher(dir, 2*time.Second)

	_, err := f.Fetch(context.Background(), srv.URL+"/audio.wav")
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error, got %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("temp dir not empty after failure: %v", names)
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	f := NewFetcher(t.TempDir(), 50*time.Millisecond)

	_, err := f.Fetch(context.Background(), srv.URL+"/slow.mp3")
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error on timeout, got %v", err)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := NewFetcher(t.TempDir(), time.Second)
	_, err := f.Fetch(context.Background(), "://not a url")
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error, got %v", err)
	}
}
