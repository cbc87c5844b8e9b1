package bulk_update

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Entry изменение одной даты. Если слота на дату нет, он создается.
type Entry struct {
	Date               time.Time
	AvailableCount     *int
	MaxCapacity        *int
	PriceOverride      *decimal.Decimal
	ClearPriceOverride bool
	StatusFlag         *string // available | blocked | maintenance
	Notes              *string

	// DateRaw исходная строка даты, попадает в Failed, если Date не разобрана
	DateRaw    string
	// ParseError причина, по которой запись не удалось разобрать на входе
	ParseError string
}

// Request модель запроса на пакетное изменение слотов ресурса
type Request struct {
	ResourceID string
	Updates    []Entry
	UpdatedBy  string
}

// FailedEntry запись, которую не удалось применить
type FailedEntry struct {
	Date    time.Time
	DateRaw string // исходная дата, если Date нулевая
	Error   string // сообщение для клиента, без деталей хранилища
	Code    string // validation | conflict | not_found | internal
}

// Response результат пакета. Порядок записей совпадает с порядком в запросе.
type Response struct {
	Updated []*domain.Slot
	Failed  []FailedEntry
	Created int // сколько слотов из Updated было создано
}
