package create_slot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Request модель запроса на создание слота
type Request struct {
	ResourceID     string           // ID ресурса (тура)
	Date           time.Time        // Дата слота (без времени)
	MaxCapacity    int              // Максимальная вместимость
	AvailableCount *int             // Свободных мест при создании (по умолчанию = MaxCapacity)
	PriceOverride  *decimal.Decimal // Цена на дату (опционально)
	Available      *bool            // false - слот создается заблокированным (по умолчанию true)
	Notes          *string          // Заметки (опционально)
	UpdatedBy      string           // Кто создал слот
}

// Response модель ответа с созданным слотом
type Response struct {
	Slot *domain.Slot
}
