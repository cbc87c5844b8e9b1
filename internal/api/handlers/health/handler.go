package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	pinger Pinger // nil для хранилища в памяти
	logger Logger
}

func NewHandler(pinger Pinger, logger Logger) *Handler {
	return &Handler{
		pinger: pinger,
		logger: logger,
	}
}

type response struct {
	Status string `json:"status"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Database ping failed: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, response{Status: "unavailable"})
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response{Status: "ok"})
}
