package adjust_capacity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
)

const (
	operationReserve = "reserve"
	operationRelease = "release"
)

// UseCase use case для занятия и освобождения мест в слоте бронирующей системой
type UseCase struct {
	slotRepo     SlotRepository
	publisher    EventPublisher
	metrics      MutationMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	publisher EventPublisher,
	metrics MutationMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Reserve занимает Participants мест. Проверка вместимости и запись выполняются
// одним условным UPDATE, поэтому конкурентные запросы не могут превысить max_capacity.
func (uc *UseCase) Reserve(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.adjust(ctx, req, operationReserve)
	uc.metrics.IncSlotMutation(operationReserve, domain.MetricResult(err))
	return resp, err
}

// Release освобождает Participants мест (отмена бронирования).
// Освободить больше, чем занято, нельзя.
func (uc *UseCase) Release(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.adjust(ctx, req, operationRelease)
	uc.metrics.IncSlotMutation(operationRelease, domain.MetricResult(err))
	return resp, err
}

func (uc *UseCase) adjust(ctx context.Context, req *Request, op string) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AdjustCapacity(%s): validation failed: %v", op, err)
		return nil, err
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	date := domain.TruncateToDay(req.Date)

	if op == operationReserve && domain.IsPastDate(date, uc.timeProvider.Now()) {
		uc.logger.Warn("AdjustCapacity(%s): date %s is in the past", op, date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	uc.logger.Info("AdjustCapacity(%s): resource=%s, date=%s, participants=%d",
		op, resourceID, date.Format(domain.DateFormat), req.Participants)

	// 2. Находим слот
	slot, err := uc.slotRepo.GetByKey(ctx, resourceID, date)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("AdjustCapacity(%s): no slot for resource=%s, date=%s", op, resourceID, date.Format(domain.DateFormat))
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("AdjustCapacity(%s): failed to get slot: %v", op, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	delta := req.Participants
	if op == operationRelease {
		delta = -delta
	}

	// 3. Атомарно меняем booked_count
	updated, err := uc.slotRepo.AdjustBookedCount(ctx, slot.ID, delta, &req.UpdatedBy)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrInsufficientCapacity):
			uc.logger.Warn("AdjustCapacity(%s): insufficient capacity on slot id=%d, delta=%d", op, slot.ID, delta)
			return nil, ErrInsufficientCapacity
		case errors.Is(err, slotRepo.ErrSlotBlocked):
			uc.logger.Warn("AdjustCapacity(%s): slot id=%d is blocked", op, slot.ID)
			return nil, ErrSlotUnavailable
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		default:
			uc.logger.Error("AdjustCapacity(%s): failed to adjust slot id=%d: %v", op, slot.ID, err)
			return nil, fmt.Errorf("%w: failed to adjust booked count: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("AdjustCapacity(%s): slot id=%d now booked=%d/%d, status=%s",
		op, updated.ID, updated.BookedCount, updated.MaxCapacity, updated.Status())

	if err := uc.publisher.PublishSlotChanged(ctx, events.SlotCapacityChanged, updated); err != nil {
		uc.logger.Warn("AdjustCapacity(%s): failed to publish event for slot id=%d: %v", op, updated.ID, err)
	}

	return &Response{Slot: updated}, nil
}
