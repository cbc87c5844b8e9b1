package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Request модели

// SearchRequest запрос поиска слотов. Все фильтры необязательны.
type SearchRequest struct {
	ResourceID  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Available   *bool // эффективная доступность
	HasCapacity *bool // есть свободные места
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	SortBy      string // date | max_capacity | booked_count | price, иначе date
	SortOrder   string // asc | desc
	Page        int    // 0 = DefaultPage
	Limit       int    // 0 = DefaultPageSize, больше MaxPageSize обрезается
}

// StatsRequest запрос статистики загрузки ресурса
type StatsRequest struct {
	ResourceID string
	StartDate  time.Time
	EndDate    time.Time
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID             int64            `json:"id"`
	ResourceID     string           `json:"resourceId"`
	Date           string           `json:"date"` // "2025-12-01"
	MaxCapacity    int              `json:"maxCapacity"`
	BookedCount    int              `json:"bookedCount"`
	AvailableCount int              `json:"availableCount"`
	Status         string           `json:"status"`
	PriceOverride  *decimal.Decimal `json:"priceOverride,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Version        int64            `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
}

// SearchResponse страница результатов поиска
type SearchResponse struct {
	Slots      []SlotResponse `json:"slots"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// DateUtilization загрузка на одну дату
type DateUtilization struct {
	Date        string  `json:"date"`
	Utilization float64 `json:"utilization"` // проценты, 0-100
	BookedCount int     `json:"bookedCount"`
	MaxCapacity int     `json:"maxCapacity"`
}

// StatsResponse статистика загрузки ресурса за период
type StatsResponse struct {
	ResourceID          string            `json:"resourceId"`
	StartDate           string            `json:"startDate"`
	EndDate             string            `json:"endDate"`
	TotalSlots          int               `json:"totalSlots"`
	TotalCapacity       int               `json:"totalCapacity"`
	TotalBooked         int               `json:"totalBooked"`
	TotalAvailable      int               `json:"totalAvailable"`
	AverageUtilization  float64           `json:"averageUtilization"`
	PeakDates           []DateUtilization `json:"peakDates"`
	LowPerformanceDates []DateUtilization `json:"lowPerformanceDates"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:             s.ID,
		ResourceID:     s.ResourceID,
		Date:           s.Date.Format(domain.DateFormat),
		MaxCapacity:    s.MaxCapacity,
		BookedCount:    s.BookedCount,
		AvailableCount: s.AvailableCount(),
		Status:         string(s.Status()),
		Notes:          s.Notes,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		UpdatedBy:      s.UpdatedBy,
	}

	if s.PriceOverride.Valid {
		price := s.PriceOverride.Decimal
		resp.PriceOverride = &price
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) []SlotResponse {
	resp := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		if slotResp := FromDomainSlot(s); slotResp != nil {
			resp = append(resp, *slotResp)
		}
	}
	return resp
}
