package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InventoryService/pkg/psqlbuilder"
)

const (
	tableSlots = "inventory_slots"

	// pq код ошибки unique_violation
	pqUniqueViolation = "23505"
)

var slotColumns = []string{
	"id",
	"resource_id",
	"slot_date",
	"max_capacity",
	"booked_count",
	"price_override",
	"override_status",
	"notes",
	"version",
	"created_at",
	"updated_at",
	"updated_by",
}

// Колонки, по которым разрешена сортировка
var sortColumns = map[domain.SortField]string{
	domain.SortByDate:        "slot_date",
	domain.SortByMaxCapacity: "max_capacity",
	domain.SortByBookedCount: "booked_count",
	domain.SortByPrice:       "price_override",
}

// Repository репозиторий слотов вместимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// При нарушении уникальности (resource_id, slot_date) возвращает ErrSlotAlreadyExists
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSlots).
		Columns(
			"resource_id",
			"slot_date",
			"max_capacity",
			"booked_count",
			"price_override",
			"override_status",
			"notes",
			"updated_by",
		).
		Values(
			slot.ResourceID,
			dateArg(slot.Date),
			slot.MaxCapacity,
			slot.BookedCount,
			slot.PriceOverride,
			overrideArg(slot.Override),
			slot.Notes,
			slot.UpdatedBy,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.Date = domain.TruncateToDay(slot.Date)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByKey получает слот по (resource_id, date)
// Внутри транзакции блокирует строку (FOR UPDATE) до конца транзакции
func (r *Repository) GetByKey(ctx context.Context, resourceID string, date time.Time) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"resource_id": resourceID, "slot_date": dateArg(date)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Update сохраняет изменения слота, если его версия не изменилась с момента чтения (CAS)
// При несовпадении версии возвращает ErrVersionConflict - вызывающий перечитывает слот и повторяет
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("max_capacity", slot.MaxCapacity).
		Set("booked_count", slot.BookedCount).
		Set("price_override", slot.PriceOverride).
		Set("override_status", overrideArg(slot.Override)).
		Set("notes", slot.Notes).
		Set("updated_by", slot.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": slot.ID, "version": slot.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.Version, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// AdjustBookedCount атомарно изменяет booked_count на delta одним условным UPDATE.
// Запись проходит, только если после изменения 0 <= booked_count <= max_capacity;
// увеличение дополнительно требует, чтобы слот не был заблокирован.
// Поэтому два конкурентных запроса на последнее место не могут пройти оба.
func (r *Repository) AdjustBookedCount(ctx context.Context, id int64, delta int, updatedBy *string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableSlots).
		Set("booked_count", squirrel.Expr("booked_count + ?", delta)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", updatedBy).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("booked_count + ? >= 0", delta)).
		Where(squirrel.Expr("booked_count + ? <= max_capacity", delta))

	if delta > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"override_status": nil})
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AdjustBookedCount - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return slot, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: AdjustBookedCount - execute update: %v", ErrExecQuery, err)
	}

	// Условие не выполнилось: выясняем причину
	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if delta > 0 && current.IsBlocked() {
		return nil, ErrSlotBlocked
	}
	return nil, ErrInsufficientCapacity
}

// ListByResourceAndRange получает слоты ресурса за период [start, end], отсортированные по дате
func (r *Repository) ListByResourceAndRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.GtOrEq{"slot_date": dateArg(start)}).
		Where(squirrel.LtOrEq{"slot_date": dateArg(end)}).
		OrderBy("slot_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Search получает страницу слотов по фильтру и общее количество подходящих слотов
//
// Для согласованности страницы и total вызывать внутри read-only транзакции
// (TransactionManager.DoReadOnly): оба запроса увидят один снимок данных.
func (r *Repository) Search(ctx context.Context, filter domain.SlotSearchFilter) ([]*domain.Slot, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applySearchFilter(
		psqlbuilder.Select("COUNT(*)").From(tableSlots), filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Search - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: Search - execute count: %v", ErrExecQuery, err)
	}

	if total == 0 {
		return []*domain.Slot{}, 0, nil
	}

	selectBuilder := applySearchFilter(psqlbuilder.Select(slotColumns...).From(tableSlots), filter).
		OrderBy(orderByClause(filter.SortBy, filter.SortDesc), "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := r.scanSlots(rows)
	if err != nil {
		return nil, 0, err
	}

	return slots, total, nil
}

// applySearchFilter добавляет условия фильтра к запросу
func applySearchFilter(b squirrel.SelectBuilder, filter domain.SlotSearchFilter) squirrel.SelectBuilder {
	if filter.ResourceID != nil {
		b = b.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"slot_date": dateArg(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"slot_date": dateArg(*filter.EndDate)})
	}

	// Эффективная доступность: не заблокирован и есть свободные места
	if filter.Available != nil {
		if *filter.Available {
			b = b.Where(squirrel.And{
				squirrel.Eq{"override_status": nil},
				squirrel.Expr("booked_count < max_capacity"),
			})
		} else {
			b = b.Where(squirrel.Or{
				squirrel.NotEq{"override_status": nil},
				squirrel.Expr("booked_count >= max_capacity"),
			})
		}
	}

	if filter.HasCapacity != nil {
		if *filter.HasCapacity {
			b = b.Where(squirrel.Expr("booked_count < max_capacity"))
		} else {
			b = b.Where(squirrel.Expr("booked_count >= max_capacity"))
		}
	}

	if filter.MinPrice != nil {
		b = b.Where(squirrel.GtOrEq{"price_override": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		b = b.Where(squirrel.LtOrEq{"price_override": *filter.MaxPrice})
	}

	return b
}

// orderByClause собирает ORDER BY только из колонок allow-list
func orderByClause(field domain.SortField, desc bool) string {
	column, ok := sortColumns[field]
	if !ok {
		column = sortColumns[domain.SortByDate]
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	if field == domain.SortByPrice {
		// слоты без переопределенной цены всегда в конце
		return column + " " + direction + " NULLS LAST"
	}
	return column + " " + direction
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку в слот
func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                 domain.Slot
		overrideStatus       sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.ResourceID,
		&slot.Date,
		&slot.MaxCapacity,
		&slot.BookedCount,
		&slot.PriceOverride,
		&overrideStatus,
		&slot.Notes,
		&slot.Version,
		&createdAt,
		&updatedAt,
		&slot.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	slot.Date = domain.TruncateToDay(slot.Date)
	if overrideStatus.Valid {
		o := domain.OverrideStatus(overrideStatus.String)
		slot.Override = &o
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// dateArg передает дату как 'YYYY-MM-DD', чтобы часовой пояс сессии БД не сдвигал день
func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func overrideArg(o *domain.OverrideStatus) interface{} {
	if o == nil {
		return nil
	}
	return string(*o)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
