package check_availability_range

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

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}

	if req.Participants < 1 || req.Participants > domain.MaxCapacity {
		return fmt.Errorf("%w: participants must be between 1 and %d", ErrInvalidInput, domain.MaxCapacity)
	}

	if err := domain.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}
