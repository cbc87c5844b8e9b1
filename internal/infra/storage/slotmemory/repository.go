// Package slotmemory хранит слоты в памяти процесса. Повторяет контракт
// Postgres репозитория (те же ошибки из пакета slot), используется для
// локального запуска (storage.driver = "memory") и в тестах.
package slotmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
)

type slotKey struct {
	resourceID string
	date       string
}

func keyOf(resourceID string, date time.Time) slotKey {
	return slotKey{resourceID: resourceID, date: date.Format(domain.DateFormat)}
}

// Repository in-memory репозиторий слотов
type Repository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Slot
	byKey  map[slotKey]int64
	now    func() time.Time
}

// NewRepository создает пустой репозиторий
func NewRepository() *Repository {
	return &Repository{
		byID:  make(map[int64]*domain.Slot),
		byKey: make(map[slotKey]int64),
		now:   time.Now,
	}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot.Date = domain.TruncateToDay(slot.Date)
	key := keyOf(slot.ResourceID, slot.Date)
	if _, exists := r.byKey[key]; exists {
		return nil, slotRepo.ErrSlotAlreadyExists
	}
	if err := slot.CheckInvariants(); err != nil {
		return nil, err
	}

	r.nextID++
	now := r.now().UTC()
	slot.ID = r.nextID
	slot.Version = 1
	slot.CreatedAt = now
	slot.UpdatedAt = now

	r.byID[slot.ID] = slot.Clone()
	r.byKey[key] = slot.ID

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return stored.Clone(), nil
}

// GetByKey получает слот по (resource_id, date)
func (r *Repository) GetByKey(ctx context.Context, resourceID string, date time.Time) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[keyOf(resourceID, date)]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return r.byID[id].Clone(), nil
}

// Update сохраняет слот, если его версия не изменилась с момента чтения
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[slot.ID]
	if !ok || stored.Version != slot.Version {
		return nil, slotRepo.ErrVersionConflict
	}
	if err := slot.CheckInvariants(); err != nil {
		return nil, err
	}

	updated := slot.Clone()
	updated.ResourceID = stored.ResourceID
	updated.Date = stored.Date
	updated.CreatedAt = stored.CreatedAt
	updated.Version = stored.Version + 1
	updated.UpdatedAt = r.now().UTC()
	r.byID[slot.ID] = updated

	slot.Version = updated.Version
	slot.UpdatedAt = updated.UpdatedAt
	return slot, nil
}

// AdjustBookedCount атомарно изменяет booked_count на delta
func (r *Repository) AdjustBookedCount(ctx context.Context, id int64, delta int, updatedBy *string) (*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if delta > 0 && stored.IsBlocked() {
		return nil, slotRepo.ErrSlotBlocked
	}

	booked := stored.BookedCount + delta
	if booked < 0 || booked > stored.MaxCapacity {
		return nil, slotRepo.ErrInsufficientCapacity
	}

	stored.BookedCount = booked
	stored.Version++
	stored.UpdatedAt = r.now().UTC()
	stored.UpdatedBy = updatedBy

	return stored.Clone(), nil
}

// ListByResourceAndRange получает слоты ресурса за период [start, end] по возрастанию даты
func (r *Repository) ListByResourceAndRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = domain.TruncateToDay(start)
	end = domain.TruncateToDay(end)

	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]*domain.Slot, 0)
	for _, s := range r.byID {
		if s.ResourceID != resourceID || s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		slots = append(slots, s.Clone())
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Date.Before(slots[j].Date)
	})

	return slots, nil
}

// Search получает страницу слотов по фильтру и общее количество подходящих
func (r *Repository) Search(ctx context.Context, filter domain.SlotSearchFilter) ([]*domain.Slot, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]*domain.Slot, 0)
	for _, s := range r.byID {
		if matches(s, filter) {
			matched = append(matched, s.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return less(matched[i], matched[j], filter.SortBy, filter.SortDesc)
	})

	total := len(matched)
	if filter.Offset >= total {
		return []*domain.Slot{}, total, nil
	}

	page := matched[filter.Offset:]
	if filter.Limit > 0 && len(page) > filter.Limit {
		page = page[:filter.Limit]
	}

	return page, total, nil
}

func matches(s *domain.Slot, f domain.SlotSearchFilter) bool {
	if f.ResourceID != nil && s.ResourceID != *f.ResourceID {
		return false
	}
	if f.StartDate != nil && s.Date.Before(domain.TruncateToDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && s.Date.After(domain.TruncateToDay(*f.EndDate)) {
		return false
	}
	if f.Available != nil && s.IsEffectivelyAvailable() != *f.Available {
		return false
	}
	if f.HasCapacity != nil && (s.AvailableCount() > 0) != *f.HasCapacity {
		return false
	}
	// как и в SQL, сравнение с NULL ценой не проходит фильтр
	if f.MinPrice != nil && (!s.PriceOverride.Valid || s.PriceOverride.Decimal.LessThan(*f.MinPrice)) {
		return false
	}
	if f.MaxPrice != nil && (!s.PriceOverride.Valid || s.PriceOverride.Decimal.GreaterThan(*f.MaxPrice)) {
		return false
	}
	return true
}

// less повторяет ORDER BY Postgres репозитория: поле, затем id ASC.
// Слоты без цены при сортировке по цене всегда в конце.
func less(a, b *domain.Slot, field domain.SortField, desc bool) bool {
	var cmp int

	switch field {
	case domain.SortByMaxCapacity:
		cmp = compareInt(a.MaxCapacity, b.MaxCapacity)
	case domain.SortByBookedCount:
		cmp = compareInt(a.BookedCount, b.BookedCount)
	case domain.SortByPrice:
		switch {
		case !a.PriceOverride.Valid && !b.PriceOverride.Valid:
			cmp = 0
		case !a.PriceOverride.Valid:
			return false
		case !b.PriceOverride.Valid:
			return true
		default:
			cmp = a.PriceOverride.Decimal.Cmp(b.PriceOverride.Decimal)
		}
	default:
		cmp = a.Date.Compare(b.Date)
	}

	if desc {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}
	return a.ID < b.ID
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
