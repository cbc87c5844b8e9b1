package check_availability

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability"
)

// PriceInfoResponse цена на дату
type PriceInfoResponse struct {
	BasePrice   decimal.Decimal `json:"basePrice"`
	DatePrice   decimal.Decimal `json:"datePrice"`
	Currency    string          `json:"currency"`
	HasOverride bool            `json:"hasOverride"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID     string             `json:"resourceId"`
	Date           string             `json:"date"`
	Available      bool               `json:"available"`
	RemainingSpots int                `json:"remainingSpots"`
	MaxCapacity    int                `json:"maxCapacity"`
	Status         *string            `json:"status,omitempty"`
	PriceInfo      *PriceInfoResponse `json:"priceInfo,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ResourceID:     resp.ResourceID,
		Date:           resp.Date.Format(domain.DateFormat),
		Available:      resp.Available,
		RemainingSpots: resp.RemainingSpots,
		MaxCapacity:    resp.MaxCapacity,
		Status:         resp.Status,
	}

	if resp.PriceInfo != nil {
		out.PriceInfo = &PriceInfoResponse{
			BasePrice:   resp.PriceInfo.BasePrice,
			DatePrice:   resp.PriceInfo.DatePrice,
			Currency:    resp.PriceInfo.Currency,
			HasOverride: resp.PriceInfo.HasOverride,
		}
	}

	return out
}
