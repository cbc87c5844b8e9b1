package update_slot

import (
	"github.com/shopspring/decimal"

	updateSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/update_slot"
)

// UpdateSlotRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateSlotRequest struct {
	AvailableCount     *int             `json:"availableCount,omitempty" validate:"omitempty,gte=0"`
	MaxCapacity        *int             `json:"maxCapacity,omitempty" validate:"omitempty,gte=1,lte=10000"`
	PriceOverride      *decimal.Decimal `json:"priceOverride,omitempty"`
	ClearPriceOverride bool             `json:"clearPriceOverride,omitempty"`
	Status             *string          `json:"status,omitempty" validate:"omitempty,oneof=available blocked maintenance AVAILABLE BLOCKED MAINTENANCE"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSlotRequest) ToUseCaseRequest(slotID int64, updatedBy string) *updateSlot.Request {
	return &updateSlot.Request{
		SlotID:             slotID,
		AvailableCount:     r.AvailableCount,
		MaxCapacity:        r.MaxCapacity,
		PriceOverride:      r.PriceOverride,
		ClearPriceOverride: r.ClearPriceOverride,
		StatusFlag:         r.Status,
		Notes:              r.Notes,
		UpdatedBy:          updatedBy,
	}
}
