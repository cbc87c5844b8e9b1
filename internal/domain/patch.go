package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StatusFlag значение административного флага в запросах на изменение
type StatusFlag string

const (
	StatusFlagAvailable   StatusFlag = "available"
	StatusFlagBlocked     StatusFlag = "blocked"
	StatusFlagMaintenance StatusFlag = "maintenance"
)

// ParseStatusFlag разбирает флаг без учета регистра
func ParseStatusFlag(s string) (StatusFlag, bool) {
	switch f := StatusFlag(strings.ToLower(strings.TrimSpace(s))); f {
	case StatusFlagAvailable, StatusFlagBlocked, StatusFlagMaintenance:
		return f, true
	default:
		return "", false
	}
}

// SlotPatch частичное изменение слота. nil поля не меняются.
type SlotPatch struct {
	AvailableCount     *int
	MaxCapacity        *int
	PriceOverride      *decimal.Decimal
	ClearPriceOverride bool
	StatusFlag         *StatusFlag
	Notes              *string // пустая строка очищает заметки
}

// IsEmpty в патче нет ни одного поля
func (p SlotPatch) IsEmpty() bool {
	return p.AvailableCount == nil &&
		p.MaxCapacity == nil &&
		p.PriceOverride == nil &&
		!p.ClearPriceOverride &&
		p.StatusFlag == nil &&
		p.Notes == nil
}

// ApplyTo применяет патч к копии слота. Исходный слот не меняется.
//
// Свободные места и вместимость проверяются совместно, если переданы оба;
// если передано одно из них, оно проверяется против текущего значения другого.
// При изменении только вместимости число занятых мест сохраняется.
func (p SlotPatch) ApplyTo(s *Slot) (*Slot, error) {
	out := s.Clone()

	if p.MaxCapacity != nil && (*p.MaxCapacity < MinCapacity || *p.MaxCapacity > MaxCapacity) {
		return nil, fmt.Errorf("%w: max_capacity must be between %d and %d", ErrValidation, MinCapacity, MaxCapacity)
	}

	switch {
	case p.AvailableCount != nil && p.MaxCapacity != nil:
		if *p.AvailableCount < 0 || *p.AvailableCount > *p.MaxCapacity {
			return nil, fmt.Errorf("%w: available_count must be between 0 and max_capacity", ErrValidation)
		}
		out.MaxCapacity = *p.MaxCapacity
		out.BookedCount = *p.MaxCapacity - *p.AvailableCount

	case p.AvailableCount != nil:
		if *p.AvailableCount < 0 || *p.AvailableCount > s.MaxCapacity {
			return nil, fmt.Errorf("%w: available_count must be between 0 and current max_capacity %d", ErrValidation, s.MaxCapacity)
		}
		out.BookedCount = s.MaxCapacity - *p.AvailableCount

	case p.MaxCapacity != nil:
		if *p.MaxCapacity < s.BookedCount {
			return nil, fmt.Errorf("%w: max_capacity %d is below booked count %d", ErrValidation, *p.MaxCapacity, s.BookedCount)
		}
		out.MaxCapacity = *p.MaxCapacity
	}

	switch {
	case p.ClearPriceOverride:
		out.PriceOverride = decimal.NullDecimal{}
	case p.PriceOverride != nil:
		if p.PriceOverride.IsNegative() {
			return nil, fmt.Errorf("%w: price_override must not be negative", ErrValidation)
		}
		out.PriceOverride = decimal.NewNullDecimal(*p.PriceOverride)
	}

	if p.StatusFlag != nil {
		switch *p.StatusFlag {
		case StatusFlagAvailable:
			out.Override = nil
		case StatusFlagBlocked:
			o := OverrideBlocked
			out.Override = &o
		case StatusFlagMaintenance:
			o := OverrideMaintenance
			out.Override = &o
		default:
			return nil, fmt.Errorf("%w: unknown status flag %q", ErrValidation, *p.StatusFlag)
		}
	}

	if p.Notes != nil {
		if len(*p.Notes) > MaxNotesLength {
			return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrValidation, MaxNotesLength)
		}
		if *p.Notes == "" {
			out.Notes = nil
		} else {
			n := *p.Notes
			out.Notes = &n
		}
	}

	if err := out.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return out, nil
}
