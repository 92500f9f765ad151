package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"journal-ai/internal/config"
	"journal-ai/internal/http"
	"journal-ai/internal/service"
	"journal-ai/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	projectRepo := storage.NewProjectRepo(db)
	journalRepo := storage.NewJournalRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	tagRepo := storage.NewTagRepo(db)
	noteTagRepo := storage.NewNoteTagRepo(db)
	aiJobRepo := storage.NewAIJobRepo(db)

	// Create service layer
	projectService := service.NewProjectService(projectRepo, journalRepo)
	journalService := service.NewJournalService(journalRepo, noteRepo, aiJobRepo)
	noteService := service.NewNoteService(noteRepo, tagRepo, noteTagRepo)
	tagService := service.NewTagService(tagRepo, noteTagRepo)
	aiJobService := service.NewAIJobService(aiJobRepo)

	// Create router with dependencies
	deps := &http.Deps{
		Projects: projectService,
		Journals: journalService,
		Notes:    noteService,
		Tags:     tagService,
		AIJobs:   aiJobService,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
