package adjust_capacity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
	"github.com/m04kA/SMC-InventoryService/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	now      = time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC)
	slotDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
)

func setup(t *testing.T, max, booked int, override *domain.OverrideStatus) (*UseCase, *slotmemory.Repository) {
	t.Helper()
	repo := slotmemory.NewRepository()
	_, err := repo.Create(context.Background(), &domain.Slot{
		ResourceID:  "tour-1",
		Date:        slotDate,
		MaxCapacity: max,
		BookedCount: booked,
		Override:    override,
	})
	require.NoError(t, err)

	uc := NewUseCase(repo, events.NoopPublisher{}, metrics.NopRecorder{}, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, repo
}

func req(participants int) *Request {
	return &Request{ResourceID: "tour-1", Date: slotDate, Participants: participants, UpdatedBy: "booking-service"}
}

func TestReserveAndRelease(t *testing.T) {
	uc, _ := setup(t, 10, 0, nil)
	ctx := context.Background()

	resp, err := uc.Reserve(ctx, req(8))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Slot.AvailableCount())
	assert.Equal(t, domain.SlotStatusLimited, resp.Slot.Status())

	_, err = uc.Reserve(ctx, req(3))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.ErrorIs(t, err, domain.ErrConflict)

	resp, err = uc.Reserve(ctx, req(2))
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusSoldOut, resp.Slot.Status())

	resp, err = uc.Release(ctx, req(10))
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Slot.AvailableCount())

	_, err = uc.Release(ctx, req(1))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestReserve_Blocked(t *testing.T) {
	blocked := domain.OverrideMaintenance
	uc, _ := setup(t, 10, 2, &blocked)

	_, err := uc.Reserve(context.Background(), req(1))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// отмена брони на заблокированном слоте разрешена
	resp, err := uc.Release(context.Background(), req(2))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Slot.BookedCount)
}

func TestReserve_Validation(t *testing.T) {
	uc, _ := setup(t, 10, 0, nil)
	ctx := context.Background()

	_, err := uc.Reserve(ctx, &Request{ResourceID: "tour-1", Date: slotDate, Participants: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Reserve(ctx, &Request{ResourceID: "tour-1", Date: now.AddDate(0, 0, -1), Participants: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Reserve(ctx, &Request{ResourceID: "tour-1", Date: slotDate.AddDate(0, 0, 1), Participants: 1})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_LastUnitRace(t *testing.T) {
	uc, repo := setup(t, 10, 9, nil)

	const workers = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, workers)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Reserve(context.Background(), req(1))
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
	}
	assert.Equal(t, 1, succeeded)

	slot, err := repo.GetByKey(context.Background(), "tour-1", slotDate)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.AvailableCount())
}
