package check_availability_range

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	checkRange "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability_range"
)

// SlotAvailabilityResponse доступность на одну дату
type SlotAvailabilityResponse struct {
	SlotID         int64            `json:"slotId"`
	Date           string           `json:"date"`
	MaxCapacity    int              `json:"maxCapacity"`
	BookedCount    int              `json:"bookedCount"`
	AvailableCount int              `json:"availableCount"`
	Status         string           `json:"status"`
	CanAccommodate bool             `json:"canAccommodate"`
	PriceOverride  *decimal.Decimal `json:"priceOverride,omitempty"`
}

// SummaryResponse сводка по диапазону
type SummaryResponse struct {
	TotalDates           int `json:"totalDates"`
	AvailableDates       int `json:"availableDates"`
	FullyBookedDates     int `json:"fullyBookedDates"`
	PartiallyBookedDates int `json:"partiallyBookedDates"`
}

// RangeResponse HTTP response model
type RangeResponse struct {
	ResourceID string                     `json:"resourceId"`
	StartDate  string                     `json:"startDate"`
	EndDate    string                     `json:"endDate"`
	Slots      []SlotAvailabilityResponse `json:"slots"`
	Summary    SummaryResponse            `json:"summary"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkRange.Response) *RangeResponse {
	out := &RangeResponse{
		ResourceID: resp.ResourceID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		Slots:      make([]SlotAvailabilityResponse, 0, len(resp.Slots)),
		Summary: SummaryResponse{
			TotalDates:           resp.Summary.TotalDates,
			AvailableDates:       resp.Summary.AvailableDates,
			FullyBookedDates:     resp.Summary.FullyBookedDates,
			PartiallyBookedDates: resp.Summary.PartiallyBookedDates,
		},
	}

	for _, s := range resp.Slots {
		item := SlotAvailabilityResponse{
			SlotID:         s.SlotID,
			Date:           s.Date.Format(domain.DateFormat),
			MaxCapacity:    s.MaxCapacity,
			BookedCount:    s.BookedCount,
			AvailableCount: s.AvailableCount,
			Status:         string(s.Status),
			CanAccommodate: s.CanAccommodate,
		}
		if s.PriceOverride.Valid {
			price := s.PriceOverride.Decimal
			item.PriceOverride = &price
		}
		out.Slots = append(out.Slots, item)
	}

	return out
}
