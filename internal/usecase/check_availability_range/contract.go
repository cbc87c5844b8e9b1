package check_availability_range

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByResourceAndRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
