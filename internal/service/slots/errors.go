package slots

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: slot not found", domain.ErrNotFound)

	// ErrNoData возвращается, когда в диапазоне статистики нет ни одного слота
	ErrNoData = fmt.Errorf("%w: no data for the requested range", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: slots service", domain.ErrInternal)
)
