package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/podscribe/backend/internal/api"
	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/chapters"
	"github.com/podscribe/backend/internal/config"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/download"
	"github.com/podscribe/backend/internal/llm"
	"github.com/podscribe/backend/internal/queue"
	"github.com/podscribe/backend/internal/speech"
	"github.com/podscribe/backend/internal/transcript"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	for _, dir := range []string{cfg.DataPath, cfg.TranscriptPath, cfg.ChaptersPath} {
		os.MkdirAll(dir, 0755)
	}

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Seed the auto-transcribe setting from the environment on first run
	if database.GetSetting("auto_transcribe", "") == "" {
		val := "false"
		if cfg.AutoTranscribe {
			val = "true"
		}
		database.SetSetting("auto_transcribe", val)
	}

	// Speech + LLM backends
	recognizer := speech.NewWhisperRecognizer(cfg.WhisperURL, cfg.WhisperLanguages)
	engine := speech.NewEngine(recognizer)
	llmClient := llm.NewClient(cfg.LLMURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.EmbedModel)

	capability := llm.ProbeCapability(context.Background(), recognizer, llmClient)
	log.Printf("Capability: %s (whisper=%q llm=%q)", capability, cfg.WhisperURL, cfg.LLMURL)

	// Services
	transcripts := transcript.NewService(cfg.TranscriptPath)
	var embedder chapters.Embedder
	if llmClient.EmbeddingsAvailable() {
		embedder = llmClient
	}
	chapterService := chapters.NewService(transcripts, llmClient, embedder, cfg.ChaptersPath)
	transcriptionQueue := queue.New(context.Background(), engine, transcripts, database)
	downloads := download.NewManager(cfg.MediaPath, database, transcriptionQueue)

	// JWT service and router
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	router := api.NewRouter(api.Deps{
		DB:          database,
		JWT:         jwtService,
		Config:      cfg,
		Transcripts: transcripts,
		Chapters:    chapterService,
		Queue:       transcriptionQueue,
		Downloads:   downloads,
		Capability:  capability,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Media path: %s", cfg.MediaPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
