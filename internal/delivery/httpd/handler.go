// Package httpd — служебный HTTP-интерфейс бота: проверки живости для
// оркестратора.
package httpd

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db     Pinger
	logger zerolog.Logger
}

func NewHandler(db Pinger, logger zerolog.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/health", h.HealthCheck)
	router.Get("/ready", h.ReadyCheck)

	return router
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "homework-bot",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
