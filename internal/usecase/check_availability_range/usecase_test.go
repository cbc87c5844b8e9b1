package check_availability_range

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
)

var start = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *slotmemory.Repository, offset, max, booked int, override *domain.OverrideStatus) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.Slot{
		ResourceID:  "tour-1",
		Date:        start.AddDate(0, 0, offset),
		MaxCapacity: max,
		BookedCount: booked,
		Override:    override,
	})
	require.NoError(t, err)
}

func TestCheckAvailabilityRange_Summary(t *testing.T) {
	repo := slotmemory.NewRepository()
	blocked := domain.OverrideBlocked

	seed(t, repo, 0, 10, 0, nil)
	// частично, 2 места
	seed(t, repo, 1, 10, 8, nil)
	// распродан
	seed(t, repo, 2, 10, 10, nil)
	// заблокирован, частично занят
	seed(t, repo, 4, 10, 5, &blocked)
	// за пределами диапазона
	seed(t, repo, 10, 10, 0, nil)

	// другой ресурс не попадает в ответ
	_, err := repo.Create(context.Background(), &domain.Slot{ResourceID: "tour-2", Date: start, MaxCapacity: 5})
	require.NoError(t, err)

	uc := NewUseCase(repo, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 6),
		Participants: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, Summary{
		TotalDates:           7,
		AvailableDates:       1,
		FullyBookedDates:     1,
		PartiallyBookedDates: 2,
	}, resp.Summary)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, start, resp.Slots[0].Date)
	assert.True(t, resp.Slots[0].CanAccommodate)
	assert.False(t, resp.Slots[1].CanAccommodate)
	assert.Equal(t, domain.SlotStatusLimited, resp.Slots[1].Status)
	assert.Equal(t, domain.SlotStatusSoldOut, resp.Slots[2].Status)
	assert.Equal(t, domain.SlotStatusBlocked, resp.Slots[3].Status)
	assert.False(t, resp.Slots[3].CanAccommodate)

	assert.LessOrEqual(t, resp.Summary.FullyBookedDates+resp.Summary.PartiallyBookedDates, resp.Summary.TotalDates)
	assert.LessOrEqual(t, resp.Summary.AvailableDates, resp.Summary.TotalDates)
}

func TestCheckAvailabilityRange_EmptyRange(t *testing.T) {
	uc := NewUseCase(slotmemory.NewRepository(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		StartDate:    start,
		EndDate:      start,
		Participants: 1,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 1, resp.Summary.TotalDates)
}

func TestCheckAvailabilityRange_Validation(t *testing.T) {
	uc := NewUseCase(slotmemory.NewRepository(), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		StartDate:    start.AddDate(0, 0, 1),
		EndDate:      start,
		Participants: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrRangeInverted)

	_, err = uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, domain.MaxRangeDays+1),
		Participants: 1,
	})
	assert.ErrorIs(t, err, domain.ErrRangeTooLong)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, domain.MaxRangeDays),
		Participants: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxRangeDays+1, resp.Summary.TotalDates)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: "tour-1", StartDate: start, EndDate: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: " ", StartDate: start, EndDate: start, Participants: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type failingRepo struct{}

func (failingRepo) ListByResourceAndRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Slot, error) {
	return nil, errors.New("timeout")
}

func TestCheckAvailabilityRange_StorageError(t *testing.T) {
	uc := NewUseCase(failingRepo{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", StartDate: start, EndDate: start, Participants: 1})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
