package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func override(o OverrideStatus) *OverrideStatus {
	return &o
}

func TestSlot_Status(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want SlotStatus
	}{
		{name: "empty slot", slot: Slot{MaxCapacity: 10, BookedCount: 0}, want: SlotStatusAvailable},
		{name: "half booked", slot: Slot{MaxCapacity: 10, BookedCount: 5}, want: SlotStatusAvailable},
		{name: "20 percent left", slot: Slot{MaxCapacity: 10, BookedCount: 8}, want: SlotStatusLimited},
		{name: "one left of ten", slot: Slot{MaxCapacity: 10, BookedCount: 9}, want: SlotStatusLimited},
		{name: "single seat free", slot: Slot{MaxCapacity: 1, BookedCount: 0}, want: SlotStatusAvailable},
		{name: "sold out", slot: Slot{MaxCapacity: 10, BookedCount: 10}, want: SlotStatusSoldOut},
		{name: "blocked wins over counts", slot: Slot{MaxCapacity: 10, BookedCount: 10, Override: override(OverrideBlocked)}, want: SlotStatusBlocked},
		{name: "maintenance", slot: Slot{MaxCapacity: 10, Override: override(OverrideMaintenance)}, want: SlotStatusMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Status())
		})
	}
}

func TestSlot_EffectiveAvailability(t *testing.T) {
	open := Slot{MaxCapacity: 10, BookedCount: 7}
	assert.True(t, open.IsEffectivelyAvailable())
	assert.True(t, open.CanAccommodate(3))
	assert.False(t, open.CanAccommodate(4))
	assert.True(t, open.IsPartiallyBooked())
	assert.False(t, open.IsFullyBooked())

	blocked := Slot{MaxCapacity: 10, Override: override(OverrideBlocked)}
	assert.False(t, blocked.IsEffectivelyAvailable())
	assert.False(t, blocked.CanAccommodate(1))

	full := Slot{MaxCapacity: 4, BookedCount: 4}
	assert.False(t, full.IsEffectivelyAvailable())
	assert.True(t, full.IsFullyBooked())
	assert.False(t, full.IsPartiallyBooked())
}

func TestSlot_Utilization(t *testing.T) {
	s := Slot{MaxCapacity: 8, BookedCount: 2}
	assert.InDelta(t, 25.0, s.Utilization(), 0.0001)

	zero := Slot{}
	assert.Equal(t, 0.0, zero.Utilization())
}

func TestSlot_CheckInvariants(t *testing.T) {
	assert.NoError(t, (&Slot{MaxCapacity: 1, BookedCount: 1}).CheckInvariants())
	assert.ErrorIs(t, (&Slot{MaxCapacity: 0}).CheckInvariants(), ErrCapacityTooLow)
	assert.ErrorIs(t, (&Slot{MaxCapacity: 3, BookedCount: 4}).CheckInvariants(), ErrBookedOutOfRange)
	assert.ErrorIs(t, (&Slot{MaxCapacity: 3, BookedCount: -1}).CheckInvariants(), ErrBookedOutOfRange)
}

func TestSlot_CloneIsDeep(t *testing.T) {
	notes := "private group"
	orig := &Slot{MaxCapacity: 5, Notes: &notes, Override: override(OverrideBlocked)}

	c := orig.Clone()
	*c.Notes = "changed"
	*c.Override = OverrideMaintenance

	assert.Equal(t, "private group", *orig.Notes)
	assert.Equal(t, OverrideBlocked, *orig.Override)
}

func TestParseSortField(t *testing.T) {
	assert.Equal(t, SortByPrice, ParseSortField("price"))
	assert.Equal(t, SortByBookedCount, ParseSortField("booked_count"))
	assert.Equal(t, SortByDate, ParseSortField("notes; DROP TABLE"))
	assert.Equal(t, SortByDate, ParseSortField(""))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "validation", ErrorCode(ErrValidation))
	assert.Equal(t, "limit_exceeded", ErrorCode(ErrLimitExceeded))
	assert.Equal(t, "conflict", ErrorCode(ErrConflict))
	assert.Equal(t, "not_found", ErrorCode(ErrNotFound))
	assert.Equal(t, "internal", ErrorCode(ErrInternal))
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "success", MetricResult(nil))
	assert.Equal(t, "conflict", MetricResult(ErrConflict))
}
