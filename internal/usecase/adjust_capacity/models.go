package adjust_capacity

import (
	"time"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// Request модель запроса на занятие или освобождение мест
type Request struct {
	ResourceID   string
	Date         time.Time
	Participants int
	UpdatedBy    string
}

// Response модель ответа со слотом после изменения
type Response struct {
	Slot *domain.Slot
}
