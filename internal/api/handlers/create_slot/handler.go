package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	createSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/create_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate           = "нельзя создать слот на прошедшую дату"
	msgInvalidSlot        = "некорректные параметры слота"
	msgSlotExists         = "слот на эту дату уже существует"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CreateSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/inventory/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /inventory/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /inventory/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /inventory/slots - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlot.ErrSlotAlreadyExists):
			h.logger.Warn("POST /inventory/slots - Slot exists: resource_id=%s, date=%s", req.ResourceID, req.Date)
			handlers.RespondDomainError(w, err, msgSlotExists)

		case errors.Is(err, createSlot.ErrInvalidDate):
			h.logger.Warn("POST /inventory/slots - Past date: resource_id=%s, date=%s", req.ResourceID, req.Date)
			handlers.RespondDomainError(w, err, msgPastDate)

		case errors.Is(err, createSlot.ErrInvalidInput):
			h.logger.Warn("POST /inventory/slots - Invalid slot: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidSlot)

		default:
			h.logger.Error("POST /inventory/slots - Failed to create slot: resource_id=%s, date=%s, error=%v",
				req.ResourceID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inventory/slots - Slot created: slot_id=%d, resource_id=%s, date=%s",
		result.Slot.ID, result.Slot.ResourceID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainSlot(result.Slot))
}
