package pipeline

import (
	"context"
	"log"

	"github.com/codebuildervaibhav/speech-gateway/internal/types"
)

// Fetcher downloads remote audio to a transient file
type Fetcher interface {
	Fetch(ctx context.Context, audioURL string) (string, error)
}

// Normalizer converts audio to the recognizer's waveform format
type Normalizer interface {
	Normalize(ctx context.Context, path string) (string, error)
}

// Transcriber turns a waveform file into text; failures arrive as text too
type Transcriber interface {
	Transcribe(ctx context.Context, path string) string
}

// Persister writes a transcription record to the document store
type Persister interface {
	Save(ctx context.Context, transcription, audioURL, status string) (string, error)
}

// Historian appends a handled request to the local history log
type Historian interface {
	Record(ctx context.Context, result *types.TranscriptionResult) error
}

// Pipeline orchestrates one transcription request:
// fetch → normalize → transcribe → persist, releasing every transient
// artifact before returning. Only the fetch step can fail the request;
// normalization and persistence degrade.
type Pipeline struct {
	fetcher     Fetcher
	normalizer  Normalizer
	transcriber Transcriber
	store       Persister // nil when Firestore never initialized
	history     Historian // nil when the history DB is disabled
}

// New wires the pipeline's collaborators. store and history may be nil.
func New(fetcher Fetcher, normalizer Normalizer, transcriber Transcriber, store Persister, history Historian) *Pipeline {
	return &Pipeline{
		fetcher:     fetcher,
		normalizer:  normalizer,
		transcriber: transcriber,
		store:       store,
		history:     history,
	}
}

// Process runs the pipeline for one audio URL. A returned error is always a
// fetch failure; everything downstream resolves to a result.
func (p *Pipeline) Process(ctx context.Context, audioURL string) (*types.TranscriptionResult, error) {
	log.Printf("Processing audio from URL: %s", audioURL)

	artifacts := &artifactSet{}
	defer artifacts.release()

	rawPath, err := p.fetcher.Fetch(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	artifacts.add(rawPath)

	wavPath := p.normalize(ctx, artifacts, rawPath)

	transcription := p.transcriber.Transcribe(ctx, wavPath)
	log.Printf("Transcription result: %s", transcription)

	result := &types.TranscriptionResult{
		Transcription: transcription,
		Status:        types.StatusSuccess,
		AudioURL:      audioURL,
	}

	if p.store != nil {
		docID, err := p.store.Save(ctx, transcription, audioURL, result.Status)
		if err != nil {
			log.Printf("Error saving to Firestore: %v", err)
		} else {
			result.FirestoreDocID = docID
		}
	} else {
		log.Println("Firestore not configured, skipping persistence")
	}

	if p.history != nil {
		if err := p.history.Record(ctx, result); err != nil {
			log.Printf("Error recording history: %v", err)
		}
	}

	return result, nil
}

// normalize converts rawPath to the recognizer format. On failure it degrades
// to the raw download instead of failing the request: normalization is an
// optimization, not a requirement.
func (p *Pipeline) normalize(ctx context.Context, artifacts *artifactSet, rawPath string) string {
	normalized, err := p.normalizer.Normalize(ctx, rawPath)
	if err != nil {
		log.Printf("Error converting audio: %v", err)
		return rawPath
	}
	artifacts.add(normalized)
	return normalized
}
