package create_slot

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	createSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/create_slot"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	ResourceID     string           `json:"resourceId" validate:"required,max=64"`
	Date           string           `json:"date" validate:"required"` // "2025-12-01"
	MaxCapacity    int              `json:"maxCapacity" validate:"required,gte=1,lte=10000"`
	AvailableCount *int             `json:"availableCount,omitempty" validate:"omitempty,gte=0"`
	PriceOverride  *decimal.Decimal `json:"priceOverride,omitempty"`
	Available      *bool            `json:"available,omitempty"`
	Notes          *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotRequest) ToUseCaseRequest(updatedBy string) (*createSlot.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createSlot.Request{
		ResourceID:     r.ResourceID,
		Date:           date,
		MaxCapacity:    r.MaxCapacity,
		AvailableCount: r.AvailableCount,
		PriceOverride:  r.PriceOverride,
		Available:      r.Available,
		Notes:          r.Notes,
		UpdatedBy:      updatedBy,
	}, nil
}
