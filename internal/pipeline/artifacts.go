package pipeline

import (
	"log"
	"os"
)

// artifactSet tracks the transient audio files one request has allocated so
// they can be released exactly once, whatever path the request exits on.
type artifactSet struct {
	paths []string
}

// add registers a file for release
func (a *artifactSet) add(path string) {
	if path == "" {
		return
	}
	a.paths = append(a.paths, path)
}

// release removes every registered file and empties the set
func (a *artifactSet) release() {
	for _, path := range a.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to cleanup temp file %s: %v", path, err)
		}
	}
	a.paths = nil
}
