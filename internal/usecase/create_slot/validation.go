package create_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// validateRequest проверяет входные данные до любых обращений к хранилищу
func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" || len(resourceID) > domain.MaxResourceIDLength {
		return fmt.Errorf("%w: resource_id must be 1..%d characters", ErrInvalidInput, domain.MaxResourceIDLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if domain.IsPastDate(req.Date, now) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	if req.MaxCapacity < domain.MinCapacity || req.MaxCapacity > domain.MaxCapacity {
		return fmt.Errorf("%w: max_capacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	if req.AvailableCount != nil && (*req.AvailableCount < 0 || *req.AvailableCount > req.MaxCapacity) {
		return fmt.Errorf("%w: available_count must be between 0 and max_capacity", ErrInvalidInput)
	}

	if req.PriceOverride != nil && req.PriceOverride.IsNegative() {
		return fmt.Errorf("%w: price_override must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
