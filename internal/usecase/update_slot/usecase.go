package update_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
)

const operation = "update_slot"

// UseCase use case для частичного изменения слота
type UseCase struct {
	slotRepo  SlotRepository
	publisher EventPublisher
	metrics   MutationMetrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	publisher EventPublisher,
	metrics MutationMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute выполняет use case изменения слота.
//
// Запись идет через compare-and-swap по версии: если слот изменился между
// чтением и записью, use case перечитывает его и применяет патч заново,
// не более domain.MaxConflictRetries раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncSlotMutation(operation, domain.MetricResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	patch, err := buildPatch(req)
	if err != nil {
		uc.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateSlot: slot=%d, by=%s", req.SlotID, req.UpdatedBy)

	for attempt := 1; ; attempt++ {
		// 2. Читаем текущее состояние
		current, err := uc.slotRepo.GetByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("UpdateSlot: slot id=%d not found", req.SlotID)
				return nil, ErrSlotNotFound
			}
			uc.logger.Error("UpdateSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3. Применяем патч к копии, проверяя инварианты
		patched, err := patch.ApplyTo(current)
		if err != nil {
			uc.logger.Warn("UpdateSlot: patch rejected for slot id=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patched.UpdatedBy = &req.UpdatedBy

		// 4. Записываем, если версия не изменилась
		updated, err := uc.slotRepo.Update(ctx, patched)
		if err == nil {
			uc.logger.Info("UpdateSlot: successfully updated slot id=%d, version=%d, status=%s",
				updated.ID, updated.Version, updated.Status())

			if err := uc.publisher.PublishSlotChanged(ctx, events.SlotUpdated, updated); err != nil {
				uc.logger.Warn("UpdateSlot: failed to publish event for slot id=%d: %v", updated.ID, err)
			}

			return &Response{Slot: updated, Attempts: attempt}, nil
		}

		if !errors.Is(err, slotRepo.ErrVersionConflict) {
			uc.logger.Error("UpdateSlot: failed to update slot id=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		if attempt > domain.MaxConflictRetries {
			uc.logger.Warn("UpdateSlot: giving up on slot id=%d after %d attempts", req.SlotID, attempt)
			return nil, ErrConcurrentUpdate
		}

		uc.logger.Warn("UpdateSlot: version conflict on slot id=%d, attempt %d", req.SlotID, attempt)
	}
}
