package get_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
	msgNoData       = "нет слотов в указанном диапазоне"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/inventory/resources/{resourceId}/stats?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := handlers.PathString(r, "resourceId")
	q := r.URL.Query()

	startDate, err := handlers.ParseDate(q.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/stats - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.ParseDate(q.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/stats - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Stats(r.Context(), &models.StatsRequest{
		ResourceID: resourceID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrNoData):
			h.logger.Warn("GET /resources/{id}/stats - No data: resource_id=%s", resourceID)
			handlers.RespondDomainError(w, err, msgNoData)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/stats - Invalid request: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRange)

		default:
			h.logger.Error("GET /resources/{id}/stats - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/stats - resource_id=%s, slots=%d", resourceID, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
