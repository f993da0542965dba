package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.wav")
	fresh := filepath.Join(dir, "fresh.wav")
	for _, path := range []string{stale, fresh} {
		if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	s := NewScheduler(dir, time.Minute, 24*time.Hour)
	s.Sweep()

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should have been removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh file should have been kept")
	}
}

func TestSweepMissingDirDoesNotPanic(t *testing.T) {
	s := NewScheduler(filepath.Join(t.TempDir(), "nope"), time.Minute, time.Hour)
	s.Sweep()
}

func TestEnsureTempDirExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureTempDirExists(dir); err != nil {
		t.Fatalf("EnsureTempDirExists: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatal("temp directory was not created")
	}
}
