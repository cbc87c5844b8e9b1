package check_availability_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	checkRange "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability_range"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParticipants = "некорректное количество участников"
	msgInvalidRange        = "некорректный диапазон дат"
)

type Handler struct {
	useCase CheckAvailabilityRangeUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/inventory/resources/{resourceId}/availability/range?startDate=&endDate=&participants=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := handlers.PathString(r, "resourceId")
	q := r.URL.Query()

	startDate, err := handlers.ParseDate(q.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability/range - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.ParseDate(q.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability/range - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	participants, err := handlers.QueryInt(r, "participants", 1)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability/range - Invalid participants: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipants)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkRange.Request{
		ResourceID:   resourceID,
		StartDate:    startDate,
		EndDate:      endDate,
		Participants: participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkRange.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability/range - Invalid request: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRange)

		default:
			h.logger.Error("GET /resources/{id}/availability/range - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability/range - resource_id=%s, total=%d, available=%d",
		resourceID, result.Summary.TotalDates, result.Summary.AvailableDates)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
