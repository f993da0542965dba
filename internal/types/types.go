package types

import "time"

// Result status constants
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TranscriptionRequest is the body of POST /transcribe
type TranscriptionRequest struct {
	AudioURL string `json:"audio_url"`
}

// TranscriptionResult is returned to the caller after the pipeline completes.
// FirestoreDocID is empty when persistence was skipped or failed.
type TranscriptionResult struct {
	Transcription  string `json:"transcription"`
	Status         string `json:"status"`
	AudioURL       string `json:"audio_url"`
	FirestoreDocID string `json:"firestore_doc_id,omitempty"`
}

// HistoryEntry is one row of the local request-history log
type HistoryEntry struct {
	ID             int64     `json:"id"`
	AudioURL       string    `json:"audio_url"`
	Transcription  string    `json:"transcription"`
	Status         string    `json:"status"`
	FirestoreDocID string    `json:"firestore_doc_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
