package store

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const datastoreScope = "https://www.googleapis.com/auth/datastore"

// FirestoreConfig carries the credential source and write destination.
// CredentialsJSON (the env-embedded blob) wins over CredentialsFile.
type FirestoreConfig struct {
	CredentialsFile string
	CredentialsJSON string
	Collection      string
	SourceTag       string
}

// Firestore persists transcription records to a Firestore collection. The
// client is created once at startup and is safe for concurrent use.
type Firestore struct {
	client     *firestore.Client
	collection string
	sourceTag  string
}

// NewFirestore builds a client from service-account JSON
func NewFirestore(ctx context.Context, cfg FirestoreConfig) (*Firestore, error) {
	data := []byte(cfg.CredentialsJSON)
	if len(data) == 0 {
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		data = b
	}

	creds, err := google.CredentialsFromJSON(ctx, data, datastoreScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return nil, fmt.Errorf("credentials do not name a project")
	}

	client, err := firestore.NewClient(ctx, creds.ProjectID, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to create Firestore client: %w", err)
	}

	return &Firestore{
		client:     client,
		collection: cfg.Collection,
		sourceTag:  cfg.SourceTag,
	}, nil
}

// Save writes one transcription record with a server-assigned timestamp and
// returns the new document ID.
func (s *Firestore) Save(ctx context.Context, transcription, audioURL, status string) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, map[string]interface{}{
		"transcription":  transcription,
		"audio_url":      audioURL,
		"timestamp":      firestore.ServerTimestamp,
		"treatment_page": s.sourceTag,
		"processed_by":   "go_backend",
		"status":         status,
	})
	if err != nil {
		return "", fmt.Errorf("failed to save transcription: %w", err)
	}
	return ref.ID, nil
}

// Close releases the underlying client
func (s *Firestore) Close() error {
	return s.client.Close()
}
