package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	"github.com/m04kA/SMC-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type mockPriceResolver struct{ mock.Mock }

func (m *mockPriceResolver) GetTourPrice(ctx context.Context, resourceID string) (*catalogservice.TourPrice, error) {
	args := m.Called(ctx, resourceID)
	if p, ok := args.Get(0).(*catalogservice.TourPrice); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// countingRepo считает обращения к хранилищу
type countingRepo struct {
	*slotmemory.Repository
	calls int
}

func (r *countingRepo) GetByKey(ctx context.Context, resourceID string, date time.Time) (*domain.Slot, error) {
	r.calls++
	return r.Repository.GetByKey(ctx, resourceID, date)
}

var (
	now      = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	slotDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
)

func newUseCase(repo SlotRepository, prices PriceResolver) *UseCase {
	uc := NewUseCase(repo, prices, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func noPrice() *mockPriceResolver {
	m := &mockPriceResolver{}
	m.On("GetTourPrice", mock.Anything, mock.Anything).Return(nil, catalogservice.ErrTourNotFound)
	return m
}

func createSlot(t *testing.T, repo *slotmemory.Repository, slot *domain.Slot) *domain.Slot {
	t.Helper()
	created, err := repo.Create(context.Background(), slot)
	require.NoError(t, err)
	return created
}

func TestCheckAvailability_AfterCapacityUpdate(t *testing.T) {
	repo := slotmemory.NewRepository()
	slot := createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10})
	uc := newUseCase(repo, noPrice())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{ResourceID: "tour-1", Date: slotDate, Participants: 5})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 10, resp.RemainingSpots)
	assert.Equal(t, 10, resp.MaxCapacity)
	require.NotNil(t, resp.Status)
	assert.Equal(t, string(domain.SlotStatusAvailable), *resp.Status)
	assert.Nil(t, resp.PriceInfo)

	// остается 3 свободных места
	slot.BookedCount = 7
	_, err = repo.Update(ctx, slot)
	require.NoError(t, err)

	resp, err = uc.Execute(ctx, &Request{ResourceID: "tour-1", Date: slotDate, Participants: 5})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 3, resp.RemainingSpots)
}

func TestCheckAvailability_Boundary(t *testing.T) {
	repo := slotmemory.NewRepository()
	createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10, BookedCount: 6})
	uc := newUseCase(repo, noPrice())

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 4})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	resp, err = uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 5})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 4, resp.RemainingSpots)
}

func TestCheckAvailability_PastDateSkipsStorage(t *testing.T) {
	repo := &countingRepo{Repository: slotmemory.NewRepository()}
	prices := &mockPriceResolver{}
	uc := newUseCase(repo, prices)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:   "tour-1",
		Date:         now.AddDate(0, 0, -1),
		Participants: 1,
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.RemainingSpots)
	assert.Equal(t, 0, repo.calls)
	prices.AssertNotCalled(t, "GetTourPrice", mock.Anything, mock.Anything)
}

func TestCheckAvailability_TodayIsChecked(t *testing.T) {
	repo := slotmemory.NewRepository()
	createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: domain.TruncateToDay(now), MaxCapacity: 2})
	uc := newUseCase(repo, noPrice())

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: now, Participants: 2})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestCheckAvailability_MissingSlot(t *testing.T) {
	uc := newUseCase(slotmemory.NewRepository(), noPrice())

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 1})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.MaxCapacity)
	assert.Equal(t, 0, resp.RemainingSpots)
	assert.Nil(t, resp.Status)
}

func TestCheckAvailability_BlockedSlot(t *testing.T) {
	repo := slotmemory.NewRepository()
	blocked := domain.OverrideBlocked
	createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10, Override: &blocked})
	uc := newUseCase(repo, noPrice())

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 1})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 10, resp.MaxCapacity)
	assert.Equal(t, 0, resp.RemainingSpots)
	assert.Equal(t, string(domain.SlotStatusBlocked), *resp.Status)
}

func TestCheckAvailability_PriceInfo(t *testing.T) {
	repo := slotmemory.NewRepository()
	createSlot(t, repo, &domain.Slot{
		ResourceID:    "tour-1",
		Date:          slotDate,
		MaxCapacity:   10,
		PriceOverride: decimal.NewNullDecimal(decimal.RequireFromString("149.00")),
	})
	createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: slotDate.AddDate(0, 0, 1), MaxCapacity: 10})

	prices := &mockPriceResolver{}
	prices.On("GetTourPrice", mock.Anything, "tour-1").Return(&catalogservice.TourPrice{
		ID:        "tour-1",
		BasePrice: decimal.RequireFromString("120.50"),
		Currency:  "EUR",
	}, nil)
	uc := newUseCase(repo, prices)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.PriceInfo)
	assert.True(t, resp.PriceInfo.HasOverride)
	assert.Equal(t, "120.5", resp.PriceInfo.BasePrice.String())
	assert.Equal(t, "149", resp.PriceInfo.DatePrice.String())
	assert.Equal(t, "EUR", resp.PriceInfo.Currency)

	resp, err = uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate.AddDate(0, 0, 1), Participants: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.PriceInfo)
	assert.False(t, resp.PriceInfo.HasOverride)
	assert.True(t, resp.PriceInfo.DatePrice.Equal(resp.PriceInfo.BasePrice))
}

func TestCheckAvailability_PriceFailureIgnored(t *testing.T) {
	repo := slotmemory.NewRepository()
	createSlot(t, repo, &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10})

	prices := &mockPriceResolver{}
	prices.On("GetTourPrice", mock.Anything, "tour-1").Return(nil, catalogservice.ErrServiceDegraded)
	uc := newUseCase(repo, prices)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 1})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Nil(t, resp.PriceInfo)
}

type failingRepo struct{}

func (failingRepo) GetByKey(ctx context.Context, resourceID string, date time.Time) (*domain.Slot, error) {
	return nil, errors.New("connection refused")
}

func TestCheckAvailability_Errors(t *testing.T) {
	uc := newUseCase(failingRepo{}, noPrice())

	_, err := uc.Execute(context.Background(), &Request{ResourceID: "tour-1", Date: slotDate, Participants: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrInternal)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"empty resource", &Request{Date: slotDate, Participants: 1}},
		{"zero date", &Request{ResourceID: "tour-1", Participants: 1}},
		{"zero participants", &Request{ResourceID: "tour-1", Date: slotDate}},
		{"too many participants", &Request{ResourceID: "tour-1", Date: slotDate, Participants: domain.MaxCapacity + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
