package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParticipants = "некорректное количество участников"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/inventory/resources/{resourceId}/availability?date=&participants=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := handlers.PathString(r, "resourceId")

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	participants, err := handlers.QueryInt(r, "participants", 1)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid participants: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipants)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ResourceID:   resourceID,
		Date:         date,
		Participants: participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability - Invalid request: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRequest)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - resource_id=%s, date=%s, available=%t",
		resourceID, r.URL.Query().Get("date"), result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
