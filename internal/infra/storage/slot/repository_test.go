package slot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InventoryService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

var day = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func slotRows() *sqlmock.Rows {
	return sqlmock.NewRows(slotColumns)
}

func addSlotRow(rows *sqlmock.Rows, id int64, max, booked int, price interface{}, override interface{}) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "tour-1", day, max, booked, price, override, nil, int64(1), now, now, nil)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inventory_slots")).
		WithArgs("tour-1", "2025-12-01", 10, 0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).AddRow(int64(7), int64(1), now, now))

	created, err := repo.Create(context.Background(), &domain.Slot{
		ResourceID:  "tour-1",
		Date:        day,
		MaxCapacity: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, int64(1), created.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inventory_slots")).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Slot{ResourceID: "tour-1", Date: day, MaxCapacity: 10})

	assert.ErrorIs(t, err, ErrSlotAlreadyExists)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_slots WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(addSlotRow(slotRows(), 3, 10, 4, "149.90", "BLOCKED"))

	slot, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 6, slot.AvailableCount())
	assert.Equal(t, domain.SlotStatusBlocked, slot.Status())
	require.True(t, slot.PriceOverride.Valid)
	assert.True(t, decimal.RequireFromString("149.90").Equal(slot.PriceOverride.Decimal))
	assert.Nil(t, slot.Notes)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_slots WHERE id = $1")).
		WillReturnRows(slotRows())

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_GetByKey_LocksInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE resource_id = $1 AND slot_date = $2 FOR UPDATE")).
		WithArgs("tour-1", "2025-12-01").
		WillReturnRows(addSlotRow(slotRows(), 1, 5, 0, nil, nil))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	slot, err := repo.GetByKey(dbmetrics.WithTx(context.Background(), tx), "tour-1", day)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, slot.Status())
	assert.False(t, slot.PriceOverride.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_VersionConflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inventory_slots SET")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))

	_, err := repo.Update(context.Background(), &domain.Slot{ID: 1, MaxCapacity: 10, Version: 3})

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestRepository_Update(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inventory_slots SET")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(4), time.Now()))

	updated, err := repo.Update(context.Background(), &domain.Slot{
		ID:          1,
		MaxCapacity: 12,
		Version:     3,
		UpdatedBy:   ptr.Ptr("admin-1"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Version)
}

func TestRepository_AdjustBookedCount_Insufficient(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inventory_slots SET booked_count = booked_count + $1")).
		WillReturnRows(slotRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_slots WHERE id = $1")).
		WillReturnRows(addSlotRow(slotRows(), 1, 5, 5, nil, nil))

	_, err := repo.AdjustBookedCount(context.Background(), 1, 1, nil)

	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AdjustBookedCount_Blocked(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("override_status IS NULL")).
		WillReturnRows(slotRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_slots WHERE id = $1")).
		WillReturnRows(addSlotRow(slotRows(), 1, 5, 0, nil, "MAINTENANCE"))

	_, err := repo.AdjustBookedCount(context.Background(), 1, 2, nil)

	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestRepository_AdjustBookedCount_Release(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inventory_slots SET booked_count = booked_count + $1")).
		WithArgs(-2, sqlmock.AnyArg(), int64(1), -2, -2).
		WillReturnRows(addSlotRow(slotRows(), 1, 5, 1, nil, nil))

	slot, err := repo.AdjustBookedCount(context.Background(), 1, -2, nil)

	require.NoError(t, err)
	assert.Equal(t, 4, slot.AvailableCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByResourceAndRange(t *testing.T) {
	repo, _, mock := newRepo(t)

	rows := addSlotRow(slotRows(), 1, 5, 0, nil, nil)
	rows = addSlotRow(rows, 2, 5, 5, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY slot_date ASC")).
		WithArgs("tour-1", "2025-12-01", "2025-12-07").
		WillReturnRows(rows)

	slots, err := repo.ListByResourceAndRange(context.Background(), "tour-1", day, day.AddDate(0, 0, 6))

	require.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Equal(t, domain.SlotStatusSoldOut, slots[1].Status())
}

func TestRepository_Search(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inventory_slots WHERE resource_id = $1")).
		WithArgs("tour-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY price_override DESC NULLS LAST, id ASC LIMIT 2 OFFSET 2")).
		WillReturnRows(addSlotRow(slotRows(), 9, 5, 0, "10.00", nil))

	slots, total, err := repo.Search(context.Background(), domain.SlotSearchFilter{
		ResourceID: ptr.Ptr("tour-1"),
		SortBy:     domain.SortByPrice,
		SortDesc:   true,
		Limit:      2,
		Offset:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, slots, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Search_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("booked_count < max_capacity")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	slots, total, err := repo.Search(context.Background(), domain.SlotSearchFilter{
		Available: ptr.Ptr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderByClause(t *testing.T) {
	assert.Equal(t, "slot_date ASC", orderByClause(domain.SortByDate, false))
	assert.Equal(t, "booked_count DESC", orderByClause(domain.SortByBookedCount, true))
	assert.Equal(t, "slot_date ASC", orderByClause(domain.SortField("1; DROP"), false))
}
