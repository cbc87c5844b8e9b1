package check_availability

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса проверки доступности на дату
type Request struct {
	ResourceID   string    // ID ресурса (тура)
	Date         time.Time // Дата (без времени)
	Participants int       // Сколько мест нужно
}

// Response модель ответа о доступности
type Response struct {
	ResourceID     string
	Date           time.Time
	Available      bool       // можно ли разместить Participants участников
	RemainingSpots int        // свободных мест, доступных для бронирования
	MaxCapacity    int        // 0, если слота нет
	Status         *string    // nil, если слота нет
	PriceInfo      *PriceInfo // nil, если базовую цену получить не удалось
}

// PriceInfo цена на дату: базовая цена тура и цена с учетом переопределения
type PriceInfo struct {
	BasePrice   decimal.Decimal
	DatePrice   decimal.Decimal
	Currency    string
	HasOverride bool
}
