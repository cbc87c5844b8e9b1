package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func flag(f StatusFlag) *StatusFlag { return &f }

func TestSlotPatch_Counts(t *testing.T) {
	base := &Slot{MaxCapacity: 10, BookedCount: 4}

	tests := []struct {
		name       string
		patch      SlotPatch
		wantMax    int
		wantBooked int
		wantErr    bool
	}{
		{name: "available only", patch: SlotPatch{AvailableCount: intPtr(3)}, wantMax: 10, wantBooked: 7},
		{name: "available above current max", patch: SlotPatch{AvailableCount: intPtr(11)}, wantErr: true},
		{name: "max only keeps booked", patch: SlotPatch{MaxCapacity: intPtr(6)}, wantMax: 6, wantBooked: 4},
		{name: "max below booked", patch: SlotPatch{MaxCapacity: intPtr(3)}, wantErr: true},
		{name: "both jointly", patch: SlotPatch{MaxCapacity: intPtr(20), AvailableCount: intPtr(15)}, wantMax: 20, wantBooked: 5},
		{name: "both inconsistent", patch: SlotPatch{MaxCapacity: intPtr(5), AvailableCount: intPtr(6)}, wantErr: true},
		{name: "zero max", patch: SlotPatch{MaxCapacity: intPtr(0)}, wantErr: true},
		{name: "negative available", patch: SlotPatch{AvailableCount: intPtr(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.patch.ApplyTo(base)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, got.MaxCapacity)
			assert.Equal(t, tt.wantBooked, got.BookedCount)
		})
	}

	assert.Equal(t, 4, base.BookedCount, "original slot must stay untouched")
}

func TestSlotPatch_OverrideAndExtras(t *testing.T) {
	notes := "storm warning"
	base := &Slot{MaxCapacity: 10, Notes: &notes, PriceOverride: decimal.NewNullDecimal(decimal.NewFromInt(10))}

	blocked, err := SlotPatch{StatusFlag: flag(StatusFlagBlocked), Notes: stringPtr("closed")}.ApplyTo(base)
	require.NoError(t, err)
	assert.Equal(t, SlotStatusBlocked, blocked.Status())
	assert.Equal(t, "closed", *blocked.Notes)

	reopened, err := SlotPatch{StatusFlag: flag(StatusFlagAvailable), Notes: stringPtr(""), ClearPriceOverride: true}.ApplyTo(blocked)
	require.NoError(t, err)
	assert.Equal(t, SlotStatusAvailable, reopened.Status())
	assert.Nil(t, reopened.Notes)
	assert.False(t, reopened.PriceOverride.Valid)

	neg := decimal.NewFromInt(-5)
	_, err = SlotPatch{PriceOverride: &neg}.ApplyTo(base)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSlotPatch_IsEmpty(t *testing.T) {
	assert.True(t, SlotPatch{}.IsEmpty())
	assert.False(t, SlotPatch{ClearPriceOverride: true}.IsEmpty())
	assert.False(t, SlotPatch{Notes: stringPtr("")}.IsEmpty())
}

func TestParseStatusFlag(t *testing.T) {
	f, ok := ParseStatusFlag(" Blocked ")
	assert.True(t, ok)
	assert.Equal(t, StatusFlagBlocked, f)

	_, ok = ParseStatusFlag("sold_out")
	assert.False(t, ok)
}

func stringPtr(s string) *string { return &s }
