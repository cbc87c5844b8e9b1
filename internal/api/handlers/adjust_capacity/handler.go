package adjust_capacity

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	adjustCapacity "github.com/m04kA/SMC-InventoryService/internal/usecase/adjust_capacity"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate             = "нельзя бронировать прошедшую дату"
	msgInvalidRequest       = "некорректные параметры запроса"
	msgSlotNotFound         = "слот на эту дату не найден"
	msgInsufficientCapacity = "недостаточно мест"
	msgSlotUnavailable      = "слот закрыт для бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
)

type adjustFunc func(ctx context.Context, req *adjustCapacity.Request) (*adjustCapacity.Response, error)

type Handler struct {
	useCase AdjustCapacityUseCase
	logger  Logger
}

func NewHandler(useCase AdjustCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleReserve POST /api/v1/inventory/resources/{resourceId}/reservations
func (h *Handler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reservations", h.useCase.Reserve)
}

// HandleRelease POST /api/v1/inventory/resources/{resourceId}/releases
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "releases", h.useCase.Release)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, adjust adjustFunc) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /resources/{id}/%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resourceID := handlers.PathString(r, "resourceId")

	var req AdjustRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(resourceID, userID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/%s - Invalid date %q: %v", route, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := adjust(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, adjustCapacity.ErrSlotNotFound):
			h.logger.Warn("POST /resources/{id}/%s - Slot not found: resource_id=%s, date=%s", route, resourceID, req.Date)
			handlers.RespondDomainError(w, err, msgSlotNotFound)

		case errors.Is(err, adjustCapacity.ErrInsufficientCapacity):
			h.logger.Warn("POST /resources/{id}/%s - Insufficient capacity: resource_id=%s, date=%s, participants=%d",
				route, resourceID, req.Date, req.Participants)
			handlers.RespondDomainError(w, err, msgInsufficientCapacity)

		case errors.Is(err, adjustCapacity.ErrSlotUnavailable):
			h.logger.Warn("POST /resources/{id}/%s - Slot blocked: resource_id=%s, date=%s", route, resourceID, req.Date)
			handlers.RespondDomainError(w, err, msgSlotUnavailable)

		case errors.Is(err, adjustCapacity.ErrInvalidDate):
			handlers.RespondDomainError(w, err, msgPastDate)

		case errors.Is(err, adjustCapacity.ErrInvalidInput):
			h.logger.Warn("POST /resources/{id}/%s - Invalid request: %v", route, err)
			handlers.RespondDomainError(w, err, msgInvalidRequest)

		default:
			h.logger.Error("POST /resources/{id}/%s - Failed: resource_id=%s, date=%s, error=%v",
				route, resourceID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources/{id}/%s - slot_id=%d, booked=%d/%d",
		route, result.Slot.ID, result.Slot.BookedCount, result.Slot.MaxCapacity)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}
