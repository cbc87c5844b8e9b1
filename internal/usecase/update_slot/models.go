package update_slot

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Request модель запроса на изменение слота. nil поля не меняются.
type Request struct {
	SlotID             int64
	AvailableCount     *int
	MaxCapacity        *int
	PriceOverride      *decimal.Decimal
	ClearPriceOverride bool
	StatusFlag         *string // available | blocked | maintenance
	Notes              *string
	UpdatedBy          string
}

// Response модель ответа с обновленным слотом
type Response struct {
	Slot     *domain.Slot
	Attempts int // сколько раз пришлось применять изменение из-за конкурентных записей
}
