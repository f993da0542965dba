package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codebuildervaibhav/speech-gateway/internal/types"
)

// HistoryDB keeps a local log of handled transcription requests in SQLite.
// Writes are best-effort: the pipeline logs and continues when they fail.
type HistoryDB struct {
	db *sql.DB
}

// NewHistoryDB opens (or creates) the history database
func NewHistoryDB(dbPath string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS transcriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audio_url TEXT NOT NULL,
		transcription TEXT NOT NULL,
		status TEXT NOT NULL,
		firestore_doc_id TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create table: %v", err)
	}

	return &HistoryDB{db: db}, nil
}

// Record appends one handled request to the log
func (h *HistoryDB) Record(ctx context.Context, result *types.TranscriptionResult) error {
	query := `
	INSERT INTO transcriptions (audio_url, transcription, status, firestore_doc_id, created_at)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err := h.db.ExecContext(ctx, query,
		result.AudioURL, result.Transcription, result.Status, result.FirestoreDocID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record transcription: %v", err)
	}

	return nil
}

// List returns the most recent entries, newest first
func (h *HistoryDB) List(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	query := `
	SELECT id, audio_url, transcription, status, firestore_doc_id, created_at
	FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT ?
	`

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcriptions: %v", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var entry types.HistoryEntry
		var docID sql.NullString
		if err := rows.Scan(&entry.ID, &entry.AudioURL, &entry.Transcription,
			&entry.Status, &docID, &entry.CreatedAt); err != nil {
			continue
		}
		entry.FirestoreDocID = docID.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (h *HistoryDB) Close() error {
	return h.db.Close()
}
