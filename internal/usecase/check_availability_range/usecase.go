package check_availability_range

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// UseCase use case для проверки доступности на диапазон дат
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute выполняет use case проверки доступности на диапазон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailabilityRange: validation failed: %v", err)
		return nil, err
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	start := domain.TruncateToDay(req.StartDate)
	end := domain.TruncateToDay(req.EndDate)

	uc.logger.Info("CheckAvailabilityRange: resource=%s, range=%s..%s, participants=%d",
		resourceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat), req.Participants)

	// 2. Получаем слоты диапазона одним запросом
	slots, err := uc.slotRepo.ListByResourceAndRange(ctx, resourceID, start, end)
	if err != nil {
		uc.logger.Error("CheckAvailabilityRange: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.Slot, len(slots))
	for _, s := range slots {
		byDate[s.Date.Format(domain.DateFormat)] = s
	}

	// 3. Проходим по каждой дате диапазона
	dates := domain.ExpandDates(start, end)
	resp := &Response{
		ResourceID: resourceID,
		StartDate:  start,
		EndDate:    end,
		Slots:      make([]SlotAvailability, 0, len(slots)),
		Summary:    Summary{TotalDates: len(dates)},
	}

	for _, date := range dates {
		slot, ok := byDate[date.Format(domain.DateFormat)]
		if !ok {
			continue
		}

		canAccommodate := slot.CanAccommodate(req.Participants)
		resp.Slots = append(resp.Slots, SlotAvailability{
			SlotID:         slot.ID,
			Date:           slot.Date,
			MaxCapacity:    slot.MaxCapacity,
			BookedCount:    slot.BookedCount,
			AvailableCount: slot.AvailableCount(),
			Status:         slot.Status(),
			CanAccommodate: canAccommodate,
			PriceOverride:  slot.PriceOverride,
		})

		if canAccommodate {
			resp.Summary.AvailableDates++
		}
		if slot.IsFullyBooked() {
			resp.Summary.FullyBookedDates++
		}
		if slot.IsPartiallyBooked() {
			resp.Summary.PartiallyBookedDates++
		}
	}

	uc.logger.Info("CheckAvailabilityRange: resource=%s, total=%d, with_slot=%d, available=%d",
		resourceID, resp.Summary.TotalDates, len(resp.Slots), resp.Summary.AvailableDates)

	return resp, nil
}
