package bulk_update

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// validateBatch проверки уровня всего пакета: при ошибке ничего не изменяется
func validateBatch(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if len(req.Updates) > domain.MaxBulkUpdateEntries {
		return fmt.Errorf("%w: got %d", ErrBatchTooLarge, len(req.Updates))
	}
	if len(req.Updates) == 0 {
		return ErrEmptyBatch
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" || len(resourceID) > domain.MaxResourceIDLength {
		return fmt.Errorf("%w: resource_id must be 1..%d characters", ErrInvalidInput, domain.MaxResourceIDLength)
	}

	return nil
}

// buildPatch проверяет запись и собирает патч слота
func buildPatch(e Entry) (domain.SlotPatch, error) {
	if e.ParseError != "" {
		return domain.SlotPatch{}, fmt.Errorf("%w: %s", ErrInvalidInput, e.ParseError)
	}
	if e.Date.IsZero() {
		return domain.SlotPatch{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if e.ClearPriceOverride && e.PriceOverride != nil {
		return domain.SlotPatch{}, fmt.Errorf("%w: price_override and clear_price_override are mutually exclusive", ErrInvalidInput)
	}

	patch := domain.SlotPatch{
		AvailableCount:     e.AvailableCount,
		MaxCapacity:        e.MaxCapacity,
		PriceOverride:      e.PriceOverride,
		ClearPriceOverride: e.ClearPriceOverride,
		Notes:              e.Notes,
	}

	if e.StatusFlag != nil {
		flag, ok := domain.ParseStatusFlag(*e.StatusFlag)
		if !ok {
			return domain.SlotPatch{}, fmt.Errorf("%w: unknown status flag %q", ErrInvalidInput, *e.StatusFlag)
		}
		patch.StatusFlag = &flag
	}

	if patch.IsEmpty() {
		return domain.SlotPatch{}, fmt.Errorf("%w: entry has no fields to apply", ErrInvalidInput)
	}

	return patch, nil
}

// newSlotCapacity вместимость создаваемого слота: переданная max_capacity,
// иначе переданное available_count
func newSlotCapacity(e Entry) (int, error) {
	capacity := 0
	switch {
	case e.MaxCapacity != nil:
		capacity = *e.MaxCapacity
	case e.AvailableCount != nil:
		capacity = *e.AvailableCount
	default:
		return 0, fmt.Errorf("%w: max_capacity or available_count is required to create a slot", ErrInvalidInput)
	}

	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return 0, fmt.Errorf("%w: max_capacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}
	return capacity, nil
}
