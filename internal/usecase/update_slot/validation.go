package update_slot

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// buildPatch проверяет запрос и собирает патч слота
func buildPatch(req *Request) (domain.SlotPatch, error) {
	if req == nil {
		return domain.SlotPatch{}, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.SlotID <= 0 {
		return domain.SlotPatch{}, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}
	if req.ClearPriceOverride && req.PriceOverride != nil {
		return domain.SlotPatch{}, fmt.Errorf("%w: price_override and clear_price_override are mutually exclusive", ErrInvalidInput)
	}

	patch := domain.SlotPatch{
		AvailableCount:     req.AvailableCount,
		MaxCapacity:        req.MaxCapacity,
		PriceOverride:      req.PriceOverride,
		ClearPriceOverride: req.ClearPriceOverride,
		Notes:              req.Notes,
	}

	if req.StatusFlag != nil {
		flag, ok := domain.ParseStatusFlag(*req.StatusFlag)
		if !ok {
			return domain.SlotPatch{}, fmt.Errorf("%w: unknown status flag %q", ErrInvalidInput, *req.StatusFlag)
		}
		patch.StatusFlag = &flag
	}

	if patch.IsEmpty() {
		return domain.SlotPatch{}, ErrNoFieldsToUpdate
	}

	return patch, nil
}
