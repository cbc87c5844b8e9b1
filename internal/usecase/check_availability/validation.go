package check_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" || len(resourceID) > domain.MaxResourceIDLength {
		return fmt.Errorf("%w: resource_id must be 1..%d characters", ErrInvalidInput, domain.MaxResourceIDLength)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Participants < 1 || req.Participants > domain.MaxCapacity {
		return fmt.Errorf("%w: participants must be between 1 and %d", ErrInvalidInput, domain.MaxCapacity)
	}

	return nil
}
