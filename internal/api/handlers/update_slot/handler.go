package update_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	updateSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/update_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoFields           = "нет полей для изменения"
	msgInvalidValues      = "некорректные значения полей слота"
	msgNotFound           = "слот не найден"
	msgConcurrentUpdate   = "слот одновременно изменяется, повторите запрос"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase UpdateSlotUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/inventory/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /inventory/slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil || slotID <= 0 {
		h.logger.Warn("PATCH /inventory/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /inventory/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, userID))
	if err != nil {
		h.respondError(w, slotID, err)
		return
	}

	h.logger.Info("PATCH /inventory/slots/{id} - Slot updated: slot_id=%d, version=%d, attempts=%d",
		slotID, result.Slot.Version, result.Attempts)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}

func (h *Handler) respondError(w http.ResponseWriter, slotID int64, err error) {
	switch {
	case errors.Is(err, updateSlot.ErrSlotNotFound):
		h.logger.Warn("PATCH /inventory/slots/{id} - Slot not found: slot_id=%d", slotID)
		handlers.RespondDomainError(w, err, msgNotFound)

	case errors.Is(err, updateSlot.ErrNoFieldsToUpdate):
		h.logger.Warn("PATCH /inventory/slots/{id} - No fields: slot_id=%d", slotID)
		handlers.RespondDomainError(w, err, msgNoFields)

	case errors.Is(err, updateSlot.ErrInvalidInput):
		h.logger.Warn("PATCH /inventory/slots/{id} - Invalid values: slot_id=%d, %v", slotID, err)
		handlers.RespondDomainError(w, err, msgInvalidValues)

	case errors.Is(err, updateSlot.ErrConcurrentUpdate):
		h.logger.Warn("PATCH /inventory/slots/{id} - Concurrent update: slot_id=%d", slotID)
		handlers.RespondDomainError(w, err, msgConcurrentUpdate)

	default:
		h.logger.Error("PATCH /inventory/slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
		handlers.RespondInternalError(w)
	}
}
