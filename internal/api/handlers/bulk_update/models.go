package bulk_update

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	bulkUpdate "github.com/m04kA/SMC-InventoryService/internal/usecase/bulk_update"
)

// EntryRequest изменение одной даты
type EntryRequest struct {
	Date               string           `json:"date" validate:"required"`
	AvailableCount     *int             `json:"availableCount,omitempty"`
	MaxCapacity        *int             `json:"maxCapacity,omitempty"`
	PriceOverride      *decimal.Decimal `json:"priceOverride,omitempty"`
	ClearPriceOverride bool             `json:"clearPriceOverride,omitempty"`
	Status             *string          `json:"status,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
}

// BulkUpdateRequest HTTP request model. Размер пакета и значения записей
// проверяет use case: ошибка записи не должна отклонять весь пакет,
// поэтому записи разбираются по одной.
type BulkUpdateRequest struct {
	Updates []json.RawMessage `json:"updates" validate:"required"`
}

// FailedEntryResponse запись, которую не удалось применить
type FailedEntryResponse struct {
	Date  string `json:"date"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// BulkUpdateResponse HTTP response model
type BulkUpdateResponse struct {
	Updated []models.SlotResponse `json:"updated"`
	Failed  []FailedEntryResponse `json:"failed"`
	Created int                   `json:"created"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Запись, которую не удалось разобрать, передается с ParseError
// и попадает в failed ответа.
func (r *BulkUpdateRequest) ToUseCaseRequest(resourceID, updatedBy string) *bulkUpdate.Request {
	entries := make([]bulkUpdate.Entry, 0, len(r.Updates))
	for _, raw := range r.Updates {
		entries = append(entries, toEntry(raw))
	}

	return &bulkUpdate.Request{
		ResourceID: resourceID,
		Updates:    entries,
		UpdatedBy:  updatedBy,
	}
}

func toEntry(raw json.RawMessage) bulkUpdate.Entry {
	var e EntryRequest
	if err := handlers.DecodeRaw(raw, &e); err != nil {
		// Дату берем без строгих проверок, чтобы указать ее в failed
		var dated struct {
			Date string `json:"date"`
		}
		_ = json.Unmarshal(raw, &dated)
		return bulkUpdate.Entry{
			DateRaw:    dated.Date,
			ParseError: fmt.Sprintf("malformed entry: %v", err),
		}
	}

	date, err := handlers.ParseDate(e.Date)
	if err != nil {
		return bulkUpdate.Entry{
			DateRaw:    e.Date,
			ParseError: fmt.Sprintf("date %q must be in YYYY-MM-DD format", e.Date),
		}
	}

	return bulkUpdate.Entry{
		Date:               date,
		AvailableCount:     e.AvailableCount,
		MaxCapacity:        e.MaxCapacity,
		PriceOverride:      e.PriceOverride,
		ClearPriceOverride: e.ClearPriceOverride,
		StatusFlag:         e.Status,
		Notes:              e.Notes,
		DateRaw:            e.Date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkUpdate.Response) *BulkUpdateResponse {
	failed := make([]FailedEntryResponse, 0, len(resp.Failed))
	for _, f := range resp.Failed {
		date := f.DateRaw
		if !f.Date.IsZero() {
			date = f.Date.Format(domain.DateFormat)
		}
		failed = append(failed, FailedEntryResponse{
			Date:  date,
			Error: f.Error,
			Code:  f.Code,
		})
	}

	return &BulkUpdateResponse{
		Updated: models.FromDomainSlotList(resp.Updated),
		Failed:  failed,
		Created: resp.Created,
	}
}
