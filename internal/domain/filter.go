package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SortField поле сортировки поиска
type SortField string

const (
	SortByDate        SortField = "date"
	SortByMaxCapacity SortField = "max_capacity"
	SortByBookedCount SortField = "booked_count"
	SortByPrice       SortField = "price"
)

// ParseSortField возвращает поле из allow-list, для неизвестных значений - дату
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByDate, SortByMaxCapacity, SortByBookedCount, SortByPrice:
		return SortField(s)
	default:
		return SortByDate
	}
}

// SlotSearchFilter фильтр поиска слотов. Все условия необязательны и
// объединяются через AND.
type SlotSearchFilter struct {
	ResourceID  *string
	StartDate   *time.Time // date >= StartDate
	EndDate     *time.Time // date <= EndDate
	Available   *bool      // эффективная доступность (не заблокирован и есть места)
	HasCapacity *bool      // available_count > 0
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal

	SortBy   SortField
	SortDesc bool

	Limit  int
	Offset int
}
