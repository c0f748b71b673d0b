package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-visual/internal/api"
	apiMiddleware "github.com/phrazzld/scry-visual/internal/api/middleware"
	"github.com/rs/cors"
)

// requestTimeout bounds every API request so no call can block indefinitely.
const requestTimeout = 15 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	visualHandler := api.NewVisualHandler(app.visualService, app.logger)

	r.Route("/api/visual", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(authMiddleware.Authenticate)

		r.Post("/decks/{"+api.DeckIDParam+"}/sessions", visualHandler.StartSession)
		r.Get("/sessions/{"+api.SessionIDParam+"}", visualHandler.GetSession)
		r.Post("/sessions/{"+api.SessionIDParam+"}/check", visualHandler.CheckMatch)
		r.Post("/sessions/{"+api.SessionIDParam+"}/end", visualHandler.EndSession)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
