package check_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/SMC-InventoryService/internal/integrations/catalogservice"
)

// UseCase use case для проверки доступности мест на дату
type UseCase struct {
	slotRepo      SlotRepository
	priceResolver PriceResolver
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	priceResolver PriceResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		priceResolver: priceResolver,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	date := domain.TruncateToDay(req.Date)

	uc.logger.Info("CheckAvailability: resource=%s, date=%s, participants=%d",
		resourceID, date.Format(domain.DateFormat), req.Participants)

	resp := &Response{
		ResourceID: resourceID,
		Date:       date,
	}

	// 2. Прошедшая дата недоступна без обращения к хранилищу
	if domain.IsPastDate(date, uc.timeProvider.Now()) {
		uc.logger.Info("CheckAvailability: date %s is in the past", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Получаем слот
	slot, err := uc.slotRepo.GetByKey(ctx, resourceID, date)
	if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Error("CheckAvailability: failed to get slot: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if slot != nil {
		status := string(slot.Status())
		resp.Status = &status
		resp.MaxCapacity = slot.MaxCapacity

		// Заблокированный слот не предлагает мест, даже если они формально свободны
		if !slot.IsBlocked() {
			resp.RemainingSpots = slot.AvailableCount()
		}
		resp.Available = slot.CanAccommodate(req.Participants)
	}

	// 4. Цена: ее отсутствие не ошибка
	resp.PriceInfo = uc.resolvePrice(ctx, resourceID, slot)

	uc.logger.Info("CheckAvailability: resource=%s, date=%s, available=%t, remaining=%d",
		resourceID, date.Format(domain.DateFormat), resp.Available, resp.RemainingSpots)

	return resp, nil
}

// resolvePrice получает базовую цену тура и цену на дату с учетом переопределения
func (uc *UseCase) resolvePrice(ctx context.Context, resourceID string, slot *domain.Slot) *PriceInfo {
	if uc.priceResolver == nil {
		return nil
	}

	price, err := uc.priceResolver.GetTourPrice(ctx, resourceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrTourNotFound):
			uc.logger.Info("CheckAvailability: no catalog price for resource=%s", resourceID)
		case errors.Is(err, catalogClient.ErrServiceDegraded):
			uc.logger.Warn("CheckAvailability: catalog degraded, responding without price for resource=%s", resourceID)
		default:
			uc.logger.Warn("CheckAvailability: failed to resolve price for resource=%s: %v", resourceID, err)
		}
		return nil
	}

	info := &PriceInfo{
		BasePrice: price.BasePrice,
		DatePrice: price.BasePrice,
		Currency:  price.Currency,
	}
	if slot != nil && slot.PriceOverride.Valid {
		info.DatePrice = slot.PriceOverride.Decimal
		info.HasOverride = true
	}

	return info
}
