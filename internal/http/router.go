package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ideapad/internal/editor"
	"ideapad/internal/handlers"
	"ideapad/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB       *sql.DB
	Ideas    storage.IdeaStore
	Blocks   storage.BlockStore
	Sessions *editor.Sessions
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.DB)
	ideaHandler := handlers.NewIdeaHandler(deps.Ideas)
	blockHandler := handlers.NewBlockHandler(deps.Blocks, deps.Sessions)
	pageHandler := handlers.NewPageHandler(deps.Ideas, deps.Blocks)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/ideas", func(r chi.Router) {
			r.Post("/", ideaHandler.Create)
			r.Get("/", ideaHandler.List)
			r.Get("/dates", ideaHandler.Dates)
			r.Post("/cleanup", ideaHandler.Cleanup)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", ideaHandler.Get)
				r.Patch("/", ideaHandler.Update)
				r.Delete("/", ideaHandler.Delete)
				r.Get("/page", pageHandler.Serve)

				r.Get("/blocks", blockHandler.List)
				r.Put("/blocks", blockHandler.Save)

				r.Post("/session", blockHandler.OpenSession)
				r.Put("/session/blocks", blockHandler.EditSession)
				r.Post("/session/flush", blockHandler.FlushSession)
				r.Delete("/session", blockHandler.CloseSession)
			})
		})
	})

	return r
}
