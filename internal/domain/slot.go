package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlotStatus человекочитаемый статус слота. Вычисляется из счетчиков и
// административного override, в БД не хранится.
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "AVAILABLE"
	SlotStatusLimited     SlotStatus = "LIMITED"
	SlotStatusSoldOut     SlotStatus = "SOLD_OUT"
	SlotStatusBlocked     SlotStatus = "BLOCKED"
	SlotStatusMaintenance SlotStatus = "MAINTENANCE"
)

// OverrideStatus административная блокировка слота - единственная часть
// статуса, которую можно выставить явно
type OverrideStatus string

const (
	OverrideBlocked     OverrideStatus = "BLOCKED"
	OverrideMaintenance OverrideStatus = "MAINTENANCE"
)

// IsValid проверяет допустимость значения override
func (o OverrideStatus) IsValid() bool {
	return o == OverrideBlocked || o == OverrideMaintenance
}

// Slot вместимость ресурса (тура) на одну календарную дату.
// Ключ уникальности - (ResourceID, Date).
type Slot struct {
	ID            int64
	ResourceID    string
	Date          time.Time // полночь UTC
	MaxCapacity   int
	BookedCount   int
	PriceOverride decimal.NullDecimal // если не задана - действует базовая цена тура
	Override      *OverrideStatus     // nil = слот не заблокирован
	Notes         *string
	Version       int64 // для optimistic locking

	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *string
}

// AvailableCount количество свободных мест
func (s *Slot) AvailableCount() int {
	return s.MaxCapacity - s.BookedCount
}

// IsBlocked возвращает true, если слот закрыт администратором
func (s *Slot) IsBlocked() bool {
	return s.Override != nil
}

// IsEffectivelyAvailable слот можно бронировать: не заблокирован и есть места
func (s *Slot) IsEffectivelyAvailable() bool {
	return !s.IsBlocked() && s.AvailableCount() > 0
}

// CanAccommodate помещаются ли participants участников
func (s *Slot) CanAccommodate(participants int) bool {
	return s.IsEffectivelyAvailable() && participants <= s.AvailableCount()
}

// IsFullyBooked мест не осталось
func (s *Slot) IsFullyBooked() bool {
	return s.AvailableCount() == 0
}

// IsPartiallyBooked часть мест занята, но не все
func (s *Slot) IsPartiallyBooked() bool {
	available := s.AvailableCount()
	return available > 0 && available < s.MaxCapacity
}

// Status вычисляет статус слота
func (s *Slot) Status() SlotStatus {
	if s.Override != nil {
		return SlotStatus(*s.Override)
	}

	available := s.AvailableCount()
	if available <= 0 {
		return SlotStatusSoldOut
	}
	if available*100 <= s.MaxCapacity*LimitedThresholdPercent {
		return SlotStatusLimited
	}
	return SlotStatusAvailable
}

// Utilization загрузка слота в процентах (0-100)
func (s *Slot) Utilization() float64 {
	if s.MaxCapacity <= 0 {
		return 0
	}
	return float64(s.BookedCount) / float64(s.MaxCapacity) * 100
}

// CheckInvariants проверяет инварианты счетчиков
func (s *Slot) CheckInvariants() error {
	if s.MaxCapacity < MinCapacity {
		return ErrCapacityTooLow
	}
	if s.BookedCount < 0 || s.BookedCount > s.MaxCapacity {
		return ErrBookedOutOfRange
	}
	return nil
}

// Clone возвращает глубокую копию слота
func (s *Slot) Clone() *Slot {
	c := *s
	if s.Override != nil {
		o := *s.Override
		c.Override = &o
	}
	if s.Notes != nil {
		n := *s.Notes
		c.Notes = &n
	}
	if s.UpdatedBy != nil {
		u := *s.UpdatedBy
		c.UpdatedBy = &u
	}
	return &c
}
