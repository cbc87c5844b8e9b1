package update_slot

import (
	"context"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

// EventPublisher интерфейс публикации событий изменения слотов
type EventPublisher interface {
	PublishSlotChanged(ctx context.Context, eventType events.EventType, slot *domain.Slot) error
}

// MutationMetrics счетчик мутаций слотов
type MutationMetrics interface {
	IncSlotMutation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
