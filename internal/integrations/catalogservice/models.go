package catalogservice

import "github.com/shopspring/decimal"

// TourPrice базовая цена тура из каталога
type TourPrice struct {
	ID        string          `json:"id"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Currency  string          `json:"currency"`
}
