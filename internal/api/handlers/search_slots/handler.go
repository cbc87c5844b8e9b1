package search_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots"
)

const (
	msgInvalidQuery  = "некорректные параметры поиска"
	msgInvalidFilter = "некорректный фильтр или пагинация"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/inventory/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /inventory/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /inventory/slots - Invalid filter: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidFilter)

		default:
			h.logger.Error("GET /inventory/slots - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /inventory/slots - Found %d slots, page=%d", result.Total, result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
