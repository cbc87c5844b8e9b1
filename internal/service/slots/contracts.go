package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Search(ctx context.Context, filter domain.SlotSearchFilter) ([]*domain.Slot, int, error)
	ListByResourceAndRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
