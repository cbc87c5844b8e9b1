package adjust_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByKey(ctx context.Context, resourceID string, date time.Time) (*domain.Slot, error)
	AdjustBookedCount(ctx context.Context, id int64, delta int, updatedBy *string) (*domain.Slot, error)
}

// EventPublisher интерфейс публикации событий изменения слотов
type EventPublisher interface {
	PublishSlotChanged(ctx context.Context, eventType events.EventType, slot *domain.Slot) error
}

// MutationMetrics счетчик мутаций слотов
type MutationMetrics interface {
	IncSlotMutation(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
