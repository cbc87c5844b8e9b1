package check_availability_range

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Request модель запроса доступности на диапазон дат
type Request struct {
	ResourceID   string
	StartDate    time.Time // включительно
	EndDate      time.Time // включительно
	Participants int
}

// SlotAvailability доступность одного существующего слота
type SlotAvailability struct {
	SlotID         int64
	Date           time.Time
	MaxCapacity    int
	BookedCount    int
	AvailableCount int
	Status         domain.SlotStatus
	CanAccommodate bool
	PriceOverride  decimal.NullDecimal
}

// Summary сводка по диапазону
type Summary struct {
	TotalDates           int // все даты диапазона, включая даты без слота
	AvailableDates       int // слот доступен и вмещает Participants
	FullyBookedDates     int // available_count == 0
	PartiallyBookedDates int // 0 < available_count < max_capacity
}

// Response модель ответа. Slots содержит только даты, для которых есть слот.
type Response struct {
	ResourceID string
	StartDate  time.Time
	EndDate    time.Time
	Slots      []SlotAvailability
	Summary    Summary
}
