package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig collects the handlers mounted by NewRouter. Nil entries
// leave their routes unmounted.
type RouterConfig struct {
	Interactions *InteractionHandler
	Dashboard    *DashboardHandler
	Store        Pinger
	Logger       *slog.Logger
}

// NewRouter assembles the full route table with request id, panic
// recovery and request logging applied to every route.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	if cfg.Interactions != nil {
		r.Post("/interactions", cfg.Interactions.Handle)
	}

	if cfg.Dashboard != nil {
		r.Route("/api", func(r chi.Router) {
			r.Get("/schedule", cfg.Dashboard.Schedule)
			r.Route("/channels/{channelID}", func(r chi.Router) {
				r.Put("/title", cfg.Dashboard.SetTitle)
				r.Delete("/", cfg.Dashboard.ClearChannel)
				r.Post("/bookings", cfg.Dashboard.CreateBooking)
				r.Get("/calendar.ics", cfg.Dashboard.Calendar)
			})
			r.Delete("/bookings/{bookingID}", cfg.Dashboard.DeleteBooking)
		})
	}

	r.Get("/health", healthHandler(cfg.Store, logger))

	return r
}

func healthHandler(store Pinger, logger *slog.Logger) http.HandlerFunc {
	responder := newResponder(logger)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := "ok"
		code := http.StatusOK
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				handlerLogger(ctx, logger, "health", "").ErrorContext(ctx, "store ping failed", "error", err)
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		responder.writeJSON(ctx, w, code, map[string]string{"status": status})
	}
}
