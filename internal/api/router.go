package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/podscribe/backend/internal/api/handlers"
	"github.com/podscribe/backend/internal/api/middleware"
	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/chapters"
	"github.com/podscribe/backend/internal/config"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/download"
	"github.com/podscribe/backend/internal/llm"
	"github.com/podscribe/backend/internal/queue"
	"github.com/podscribe/backend/internal/transcript"
)

type Deps struct {
	DB          *db.Database
	JWT         *auth.JWTService
	Config      *config.Config
	Transcripts *transcript.Service
	Chapters    *chapters.Service
	Queue       *queue.Queue
	Downloads   *download.Manager
	Capability  llm.Capability
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(deps.Config.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(deps.DB, deps.JWT)
	episodesHandler := handlers.NewEpisodesHandler(deps.DB, deps.Downloads, deps.Config.MediaPath)
	transcriptHandler := handlers.NewTranscriptHandler(deps.DB, deps.Transcripts, deps.Queue)
	chaptersHandler := handlers.NewChaptersHandler(deps.DB, deps.Chapters)
	queueHandler := handlers.NewQueueHandler(deps.Queue)
	settingsHandler := handlers.NewSettingsHandler(deps.DB, deps.Capability)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.JWT))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Episodes
			r.Get("/episodes", episodesHandler.List)
			r.Post("/episodes", episodesHandler.Upsert)
			r.Get("/episodes/{guid}", episodesHandler.Get)
			r.Delete("/episodes/{guid}", episodesHandler.Delete)
			r.Post("/episodes/{guid}/download", episodesHandler.Download)
			r.Get("/media/files", episodesHandler.MediaFiles)

			// Transcripts
			r.Get("/episodes/{guid}/transcript", transcriptHandler.Get)
			r.Post("/episodes/{guid}/transcribe", transcriptHandler.Transcribe)
			r.Delete("/episodes/{guid}/transcript", transcriptHandler.Delete)
			r.Get("/episodes/{guid}/progress", transcriptHandler.Progress)

			// Chapters
			r.Get("/episodes/{guid}/chapters", chaptersHandler.Get)
			r.Post("/episodes/{guid}/chapters", chaptersHandler.Generate)
			r.Delete("/episodes/{guid}/chapters", chaptersHandler.Delete)

			// Queue
			r.Get("/queue", queueHandler.Status)
			r.Get("/queue/{guid}", queueHandler.Position)

			// Settings
			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)
		})
	})

	return r
}
