package adjust_capacity

import (
	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	adjustCapacity "github.com/m04kA/SMC-InventoryService/internal/usecase/adjust_capacity"
)

// AdjustRequest HTTP request model
type AdjustRequest struct {
	Date         string `json:"date" validate:"required"`
	Participants int    `json:"participants" validate:"required,gte=1,lte=10000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdjustRequest) ToUseCaseRequest(resourceID, updatedBy string) (*adjustCapacity.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &adjustCapacity.Request{
		ResourceID:   resourceID,
		Date:         date,
		Participants: r.Participants,
		UpdatedBy:    updatedBy,
	}, nil
}
