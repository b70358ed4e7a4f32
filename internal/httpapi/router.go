// Package httpapi exposes the board and page use cases over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/salesdeck/salesdeck/internal/app"
)

// requestTimeout bounds every request handled by the router.
const requestTimeout = 30 * time.Second

// NewRouter builds the HTTP handler for the container's use cases.
func NewRouter(c *app.Container) http.Handler {
	h := &Handlers{c: c}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(c.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", h.Health)

	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.Board)
		r.Get("/history", h.History)
		r.Get("/moves", h.Moves)
		r.Post("/moves", h.MoveCard)
		r.Post("/columns", h.AddColumn)
		r.Delete("/columns/{columnID}", h.RemoveColumn)
		r.Post("/columns/{columnID}/cards", h.AddCard)
	})

	r.Route("/pages", func(r chi.Router) {
		r.Get("/", h.ListPages)
		r.Post("/", h.ImportPage)
		r.Get("/{slug}", h.ShowPage)
		r.Patch("/{slug}", h.SavePage)
		r.Delete("/{slug}", h.DeletePage)
		r.Get("/{slug}/export", h.ExportPage)
	})

	return r
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			if logger == nil {
				return
			}
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
