package create_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
)

const operation = "create_slot"

// UseCase use case для создания слота
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

// Execute выполняет use case создания слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncSlotMutation(operation, domain.MetricResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateSlot: resource=%s, date=%s, max=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.MaxCapacity)

	// 2. Собираем слот: хранится число занятых мест, свободные вычисляются
	available := req.MaxCapacity
	if req.AvailableCount != nil {
		available = *req.AvailableCount
	}

	slot := &domain.Slot{
		ResourceID:  strings.TrimSpace(req.ResourceID),
		Date:        domain.TruncateToDay(req.Date),
		MaxCapacity: req.MaxCapacity,
		BookedCount: req.MaxCapacity - available,
		Notes:       req.Notes,
		UpdatedBy:   &req.UpdatedBy,
	}
	if req.PriceOverride != nil {
		slot.PriceOverride = decimal.NewNullDecimal(*req.PriceOverride)
	}
	if req.Available != nil && !*req.Available {
		blocked := domain.OverrideBlocked
		slot.Override = &blocked
	}

	// 3. Сохраняем слот
	created, err := uc.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			uc.logger.Warn("CreateSlot: slot already exists resource=%s, date=%s",
				slot.ResourceID, slot.Date.Format(domain.DateFormat))
			return nil, ErrSlotAlreadyExists
		}
		uc.logger.Error("CreateSlot: failed to create slot: %v", err)
		return nil, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateSlot: successfully created slot id=%d, status=%s", created.ID, created.Status())

	// 4. Публикуем событие, ошибка публикации не отменяет создание
	if err := uc.publisher.PublishSlotChanged(ctx, events.SlotCreated, created); err != nil {
		uc.logger.Warn("CreateSlot: failed to publish event for slot id=%d: %v", created.ID, err)
	}

	return &Response{Slot: created}, nil
}
