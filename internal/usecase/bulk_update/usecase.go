package bulk_update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
)

const (
	operation = "bulk_update"

	// DefaultWorkers число параллельно обрабатываемых записей по умолчанию
	DefaultWorkers = 8
)

// UseCase use case для пакетного изменения слотов ресурса (upsert по датам)
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MutationMetrics
	workers      int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. workers <= 0 заменяется на DefaultWorkers.
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MutationMetrics,
	workers int,
	logger Logger,
) *UseCase {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		workers:      workers,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// entryResult результат обработки одной записи
type entryResult struct {
	slot    *domain.Slot
	created bool
	err     error
}

// Execute применяет записи пакета независимо друг от друга.
//
// Ошибки уровня пакета (размер, ресурс) возвращаются до любых изменений.
// Ошибка отдельной записи попадает в Failed, остальные записи обрабатываются дальше.
// Каждая запись выполняется в своей транзакции с блокировкой строки слота;
// общей блокировки на весь пакет нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация пакета
	if err := validateBatch(req); err != nil {
		uc.logger.Warn("BulkUpdate: validation failed: %v", err)
		uc.metrics.IncSlotMutation(operation, domain.MetricResult(err))
		return nil, err
	}

	resourceID := strings.TrimSpace(req.ResourceID)
	now := uc.timeProvider.Now()

	uc.logger.Info("BulkUpdate: resource=%s, entries=%d, by=%s", resourceID, len(req.Updates), req.UpdatedBy)

	// 2. Повторные даты внутри пакета отклоняются, применяется первое вхождение
	results := make([]entryResult, len(req.Updates))
	seen := make(map[string]struct{}, len(req.Updates))
	for i, e := range req.Updates {
		key := e.Date.Format(domain.DateFormat)
		if _, dup := seen[key]; dup && !e.Date.IsZero() {
			results[i].err = fmt.Errorf("%w: %s", ErrDuplicateDate, key)
			continue
		}
		seen[key] = struct{}{}
	}

	// 3. Обрабатываем записи ограниченным пулом воркеров
	g := new(errgroup.Group)
	g.SetLimit(uc.workers)

	for i := range req.Updates {
		if results[i].err != nil {
			continue
		}
		i := i
		g.Go(func() error {
			slot, created, err := uc.applyEntry(ctx, resourceID, req.Updates[i], req.UpdatedBy, now)
			results[i] = entryResult{slot: slot, created: created, err: err}
			return nil
		})
	}
	_ = g.Wait()

	// 4. Собираем ответ в порядке запроса
	resp := &Response{
		Updated: make([]*domain.Slot, 0, len(req.Updates)),
		Failed:  make([]FailedEntry, 0),
	}

	for i, r := range results {
		if r.err != nil {
			code := domain.ErrorCode(r.err)
			uc.metrics.IncSlotMutation(operation, code)
			resp.Failed = append(resp.Failed, FailedEntry{
				Date:    domain.TruncateToDay(req.Updates[i].Date),
				DateRaw: req.Updates[i].DateRaw,
				Error:   clientMessage(r.err),
				Code:    code,
			})
			continue
		}

		uc.metrics.IncSlotMutation(operation, domain.MetricResult(nil))
		resp.Updated = append(resp.Updated, r.slot)
		if r.created {
			resp.Created++
		}

		eventType := events.SlotUpdated
		if r.created {
			eventType = events.SlotCreated
		}
		if err := uc.publisher.PublishSlotChanged(ctx, eventType, r.slot); err != nil {
			uc.logger.Warn("BulkUpdate: failed to publish event for slot id=%d: %v", r.slot.ID, err)
		}
	}

	uc.logger.Info("BulkUpdate: resource=%s done, updated=%d (created=%d), failed=%d",
		resourceID, len(resp.Updated), resp.Created, len(resp.Failed))

	return resp, nil
}

// applyEntry применяет одну запись. Гонки на создание (unique violation) и
// конкурентные изменения версии повторяются заново в новой транзакции.
func (uc *UseCase) applyEntry(ctx context.Context, resourceID string, e Entry, updatedBy string, now time.Time) (*domain.Slot, bool, error) {
	patch, err := buildPatch(e)
	if err != nil {
		return nil, false, err
	}
	date := domain.TruncateToDay(e.Date)

	for attempt := 1; ; attempt++ {
		var (
			result  *domain.Slot
			created bool
		)

		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			// Внутри транзакции строка блокируется до коммита
			existing, err := uc.slotRepo.GetByKey(txCtx, resourceID, date)
			switch {
			case err == nil:
				result, err = uc.updateExisting(txCtx, existing, patch, updatedBy)
				return err
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				created = true
				result, err = uc.createNew(txCtx, resourceID, date, e, patch, updatedBy, now)
				return err
			default:
				return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
			}
		})

		if err == nil {
			return result, created, nil
		}

		retryable := errors.Is(err, slotRepo.ErrSlotAlreadyExists) || errors.Is(err, slotRepo.ErrVersionConflict)
		if !retryable {
			if errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("BulkUpdate: entry %s rejected: %v", date.Format(domain.DateFormat), err)
			} else {
				uc.logger.Error("BulkUpdate: entry %s failed: %v", date.Format(domain.DateFormat), err)
			}
			return nil, false, err
		}

		if attempt > domain.MaxConflictRetries {
			uc.logger.Warn("BulkUpdate: giving up on entry %s after %d attempts", date.Format(domain.DateFormat), attempt)
			return nil, false, ErrConcurrentUpdate
		}

		// Слот создали или изменили параллельно: следующая попытка его прочитает
		uc.logger.Warn("BulkUpdate: concurrent write on entry %s, attempt %d: %v", date.Format(domain.DateFormat), attempt, err)
	}
}

func (uc *UseCase) updateExisting(ctx context.Context, existing *domain.Slot, patch domain.SlotPatch, updatedBy string) (*domain.Slot, error) {
	patched, err := patch.ApplyTo(existing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	patched.UpdatedBy = &updatedBy

	updated, err := uc.slotRepo.Update(ctx, patched)
	if err != nil {
		if errors.Is(err, slotRepo.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
	}
	return updated, nil
}

func (uc *UseCase) createNew(ctx context.Context, resourceID string, date time.Time, e Entry, patch domain.SlotPatch, updatedBy string, now time.Time) (*domain.Slot, error) {
	if domain.IsPastDate(date, now) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	capacity, err := newSlotCapacity(e)
	if err != nil {
		return nil, err
	}

	// Новый слот полностью свободен, затем к нему применяется запись
	slot, err := patch.ApplyTo(&domain.Slot{
		ResourceID:  resourceID,
		Date:        date,
		MaxCapacity: capacity,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	slot.UpdatedBy = &updatedBy

	created, err := uc.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
	}
	return created, nil
}

// clientMessage текст ошибки для ответа: внутренние ошибки не раскрываются
func clientMessage(err error) string {
	if domain.ErrorCode(err) == "internal" {
		return "internal error"
	}
	return err.Error()
}
