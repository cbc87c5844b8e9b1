package delete_slot

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	updateSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/update_slot"
)

const (
	msgInvalidSlotID    = "некорректный ID слота"
	msgInvalidReason    = "слишком длинная причина удаления"
	msgNotFound         = "слот не найден"
	msgConcurrentUpdate = "слот одновременно изменяется, повторите запрос"
	msgMissingUserID    = "отсутствует ID пользователя"

	defaultReason = "slot deleted"
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

// Handle DELETE /api/v1/inventory/slots/{slotId}?reason=
//
// Мягкое удаление: слот блокируется, причина записывается в notes.
// Строка остается в хранилище вместе с booked_count.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /inventory/slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil || slotID <= 0 {
		h.logger.Warn("DELETE /inventory/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	if reason == "" {
		reason = defaultReason
	}
	if len(reason) > domain.MaxNotesLength {
		handlers.RespondBadRequest(w, msgInvalidReason)
		return
	}

	blocked := string(domain.StatusFlagBlocked)
	result, err := h.useCase.Execute(r.Context(), &updateSlot.Request{
		SlotID:     slotID,
		StatusFlag: &blocked,
		Notes:      &reason,
		UpdatedBy:  userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateSlot.ErrSlotNotFound):
			h.logger.Warn("DELETE /inventory/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, updateSlot.ErrConcurrentUpdate):
			h.logger.Warn("DELETE /inventory/slots/{id} - Concurrent update: slot_id=%d", slotID)
			handlers.RespondDomainError(w, err, msgConcurrentUpdate)

		default:
			h.logger.Error("DELETE /inventory/slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /inventory/slots/{id} - Slot blocked: slot_id=%d, by=%s", slotID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}
