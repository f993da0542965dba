package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// Scheduler sweeps stale audio artifacts out of the temp directory. Each
// request releases its own files; this catches anything orphaned by a crash.
type Scheduler struct {
	tempDir  string
	interval time.Duration
	maxAge   time.Duration
	stopChan chan struct{}
}

// NewScheduler creates a cleanup scheduler for tempDir
func NewScheduler(tempDir string, interval, maxAge time.Duration) *Scheduler {
	return &Scheduler{
		tempDir:  tempDir,
		interval: interval,
		maxAge:   maxAge,
		stopChan: make(chan struct{}),
	}
}

// Start runs one sweep immediately and then sweeps periodically
func (s *Scheduler) Start() {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Cleanup scheduler started (interval: %s, max age: %s)", s.interval, s.maxAge)
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// Sweep removes files older than maxAge from the temp directory
func (s *Scheduler) Sweep() {
	now := time.Now()
	var deleted int

	err := filepath.Walk(s.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if now.Sub(info.ModTime()) > s.maxAge {
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to delete stale artifact %s: %v", path, err)
			} else {
				deleted++
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error during cleanup sweep: %v", err)
	}

	if deleted > 0 {
		log.Printf("Cleanup sweep removed %d stale artifacts", deleted)
	}
}

// EnsureTempDirExists creates the temp directory if it doesn't exist
func EnsureTempDirExists(tempDir string) error {
	return os.MkdirAll(tempDir, 0755)
}
