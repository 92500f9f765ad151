package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"journal-ai/internal/handlers"
	"journal-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Projects service.ProjectService
	Journals service.JournalService
	Notes    service.NoteService
	Tags     service.TagService
	AIJobs   service.AIJobService
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Add CORS and request-scoped logger middleware
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	projectHandler := handlers.NewProjectHandler(deps.Projects)
	journalHandler := handlers.NewJournalHandler(deps.Journals)
	journalPage := handlers.NewJournalPageHandler(deps.Journals)
	noteHandler := handlers.NewNoteHandler(deps.Notes)
	tagHandler := handlers.NewTagHandler(deps.Tags)
	aiJobHandler := handlers.NewAIJobHandler(deps.AIJobs)

	r.Get("/health", handlers.Health)

	// Register API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{projectID}", projectHandler.Get)
			r.Put("/{projectID}", projectHandler.Update)
			r.Delete("/{projectID}", projectHandler.Delete)
			r.Get("/{projectID}/journals", projectHandler.Journals)
		})

		r.Route("/journals", func(r chi.Router) {
			r.Get("/", journalHandler.List)
			r.Post("/", journalHandler.Create)
			r.Get("/{journalID}", journalHandler.Get)
			r.Put("/{journalID}", journalHandler.Update)
			r.Delete("/{journalID}", journalHandler.Delete)
			r.Get("/{journalID}/notes", journalHandler.Notes)
			r.Get("/{journalID}/ai-jobs", journalHandler.AIJobs)
			r.Get("/{journalID}/html", journalPage.ServeHTTP)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/{noteID}", noteHandler.Get)
			r.Put("/{noteID}", noteHandler.Update)
			r.Delete("/{noteID}", noteHandler.Delete)
			r.Get("/{noteID}/tags", noteHandler.Tags)
			r.Post("/{noteID}/tags/{tagID}", noteHandler.AddTag)
			r.Delete("/{noteID}/tags/{tagID}", noteHandler.RemoveTag)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Post("/", tagHandler.Create)
			r.Get("/{tagID}", tagHandler.Get)
			r.Put("/{tagID}", tagHandler.Update)
			r.Delete("/{tagID}", tagHandler.Delete)
			r.Get("/{tagID}/notes", tagHandler.Notes)
		})

		r.Route("/ai-jobs", func(r chi.Router) {
			r.Get("/", aiJobHandler.List)
			r.Post("/", aiJobHandler.Create)
			r.Get("/{jobID}", aiJobHandler.Get)
			r.Put("/{jobID}", aiJobHandler.Update)
			r.Delete("/{jobID}", aiJobHandler.Delete)
		})
	})

	return r
}
