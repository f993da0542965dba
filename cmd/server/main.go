package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/codebuildervaibhav/speech-gateway/internal/audio"
	"github.com/codebuildervaibhav/speech-gateway/internal/cleanup"
	"github.com/codebuildervaibhav/speech-gateway/internal/config"
	"github.com/codebuildervaibhav/speech-gateway/internal/fetch"
	"github.com/codebuildervaibhav/speech-gateway/internal/handlers"
	"github.com/codebuildervaibhav/speech-gateway/internal/pipeline"
	"github.com/codebuildervaibhav/speech-gateway/internal/recognize"
	"github.com/codebuildervaibhav/speech-gateway/internal/store"
)

func main() {
	// Load .env before reading config overrides
	godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure directories exist
	if err := cleanup.EnsureTempDirExists(cfg.Audio.TempDir); err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}
	if dir := filepath.Dir(cfg.History.Database); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// Custom logger setup
	logBuffer := &LogBuffer{
		lines: make([]string, 0, 1000),
	}
	multiWriter := io.MultiWriter(os.Stdout, logBuffer)
	log.SetOutput(multiWriter)

	// Initialize components
	log.Println("Initializing components...")

	// Firestore persister (optional - the service runs without it)
	var persister pipeline.Persister
	firestoreConnected := false
	fsStore, err := store.NewFirestore(context.Background(), store.FirestoreConfig{
		CredentialsFile: cfg.Firestore.CredentialsFile,
		CredentialsJSON: cfg.Firestore.CredentialsJSON,
		Collection:      cfg.Firestore.Collection,
		SourceTag:       cfg.Firestore.SourceTag,
	})
	if err != nil {
		log.Printf("WARNING: Firestore not available: %v", err)
		log.Println("Transcriptions will be returned to callers without server-side persistence")
	} else {
		persister = fsStore
		firestoreConnected = true
		defer fsStore.Close()
		log.Println("Firestore persistence enabled")
	}

	// Local request-history log (optional as well)
	var historian pipeline.Historian
	var historyLister handlers.HistoryLister
	historyDB, err := store.NewHistoryDB(cfg.History.Database)
	if err != nil {
		log.Printf("WARNING: history database unavailable: %v", err)
	} else {
		historian = historyDB
		historyLister = historyDB
		defer historyDB.Close()
	}

	// Pipeline collaborators
	fetcher := fetch.NewFetcher(cfg.Audio.TempDir, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
	normalizer := audio.NewNormalizer(cfg.Audio.TempDir, cfg.Audio.SampleRate)
	recognizer := recognize.NewClient(cfg.Recognition.Endpoint, cfg.Recognition.APIKey, cfg.Recognition.Language)
	transcriber := recognize.NewTranscriber(recognizer,
		time.Duration(cfg.Recognition.CalibrationSeconds*float64(time.Second)))

	pipe := pipeline.New(fetcher, normalizer, transcriber, persister, historian)

	// Cleanup scheduler
	cleanupScheduler := cleanup.NewScheduler(
		cfg.Audio.TempDir,
		time.Duration(cfg.Cleanup.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Cleanup.MaxAgeHours)*time.Hour,
	)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	environment := "production"
	if cfg.Server.Debug {
		environment = "development"
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: handlers.ServiceName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   "Internal server error",
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Initialize handlers
	transcribeHandler := handlers.NewTranscribeHandler(pipe)
	healthHandler := handlers.NewHealthHandler(firestoreConnected, environment)

	// Routes
	app.Get("/", handlers.Index)
	app.Get("/health", healthHandler.Handle)
	app.Post("/transcribe", transcribeHandler.Handle)

	if historyLister != nil {
		historyHandler := handlers.NewHistoryHandler(historyLister)
		app.Get("/transcriptions", historyHandler.Handle)
	}

	// Get server logs
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	// Unknown routes
	app.Use(handlers.NotFound)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Println("Endpoints:")
	for _, endpoint := range handlers.Endpoints {
		log.Printf("   %s", endpoint)
	}

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// LogBuffer captures logs in memory
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

func (lb *LogBuffer) Write(p []byte) (n int, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.lines = append(lb.lines, string(p))

	// Keep last 1000 lines
	if len(lb.lines) > 1000 {
		lb.lines = lb.lines[len(lb.lines)-1000:]
	}

	return len(p), nil
}

func (lb *LogBuffer) GetLogs() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	logs := make([]string, len(lb.lines))
	copy(logs, lb.lines)
	return logs
}
