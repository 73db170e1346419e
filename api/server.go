/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/scenarios/*      Scenario modeling
  /api/portfolio/*      Portfolio entries, summary, timeline, settings
  /api/demos/*          Demo datasets
  /api/reset            Database reset (dev only)
  /*                    Static files (frontend)

STATIC FILE SERVING:
  In production, serves the built frontend from web/dist/.
  Falls back to index.html for client-side routing.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/", h.CreateScenario)
			r.Get("/{id}", h.GetScenario)
			r.Put("/{id}", h.UpdateScenario)
			r.Delete("/{id}", h.DeleteScenario)
			r.Post("/{id}/duplicate", h.DuplicateScenario)
			r.Get("/{id}/results", h.GetScenarioResults)
			r.Get("/{id}/formulas", h.GetScenarioFormulas)
		})

		// Portfolio routes
		r.Route("/portfolio", func(r chi.Router) {
			r.Route("/entries", func(r chi.Router) {
				r.Get("/", h.ListEntries)
				r.Post("/", h.CreateEntry)
				r.Get("/{id}", h.GetEntry)
				r.Put("/{id}", h.UpdateEntry)
				r.Delete("/{id}", h.DeleteEntry)
			})
			r.Get("/summary", h.GetPortfolioSummary)
			r.Get("/timeline", h.GetPortfolioTimeline)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
		})

		// Demo routes
		r.Route("/demos", func(r chi.Router) {
			r.Get("/", h.ListDemos)
			r.Post("/load", h.LoadDemo)
		})

		// Dev/demo reset
		r.Post("/reset", h.Reset)
	})

	// Static file serving (frontend)
	webDir := "./web/dist"
	if _, err := os.Stat(webDir); err == nil {
		fileServer := http.FileServer(http.Dir(webDir))
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			path := filepath.Join(webDir, filepath.Clean(req.URL.Path))
			if _, err := os.Stat(path); os.IsNotExist(err) {
				// Fall back to index.html for client-side routing
				http.ServeFile(w, req, filepath.Join(webDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, req)
		})
	}

	return r
}
