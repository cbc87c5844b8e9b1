package bulk_update

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/domain"
	bulkUpdate "github.com/m04kA/SMC-InventoryService/internal/usecase/bulk_update"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBatchTooLarge      = "слишком много записей в пакете"
	msgEmptyBatch         = "пустой пакет изменений"
	msgInvalidBatch       = "некорректный пакет изменений"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase BulkUpdateUseCase
	logger  Logger
}

func NewHandler(useCase BulkUpdateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/inventory/resources/{resourceId}/slots/bulk
//
// Частичный успех отвечает 200: неудачные записи перечислены в failed.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /resources/{id}/slots/bulk - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resourceID := handlers.PathString(r, "resourceId")

	var req BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Размер пакета проверяется до разбора записей
	if len(req.Updates) > domain.MaxBulkUpdateEntries {
		h.logger.Warn("POST /resources/{id}/slots/bulk - Batch too large: resource_id=%s, entries=%d", resourceID, len(req.Updates))
		handlers.RespondDomainError(w, bulkUpdate.ErrBatchTooLarge, msgBatchTooLarge)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(resourceID, userID))
	if err != nil {
		switch {
		case errors.Is(err, bulkUpdate.ErrBatchTooLarge):
			h.logger.Warn("POST /resources/{id}/slots/bulk - Batch too large: resource_id=%s, entries=%d", resourceID, len(req.Updates))
			handlers.RespondDomainError(w, err, msgBatchTooLarge)

		case errors.Is(err, bulkUpdate.ErrEmptyBatch):
			handlers.RespondDomainError(w, err, msgEmptyBatch)

		case errors.Is(err, bulkUpdate.ErrInvalidInput):
			h.logger.Warn("POST /resources/{id}/slots/bulk - Invalid batch: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidBatch)

		default:
			h.logger.Error("POST /resources/{id}/slots/bulk - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources/{id}/slots/bulk - resource_id=%s, updated=%d, failed=%d",
		resourceID, len(result.Updated), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
