package update_slot

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_slot: invalid input data", domain.ErrValidation)

	// ErrNoFieldsToUpdate возвращается, если в запросе нет ни одного изменяемого поля
	ErrNoFieldsToUpdate = fmt.Errorf("%w: update_slot: no fields to update", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: update_slot: slot not found", domain.ErrNotFound)

	// ErrConcurrentUpdate возвращается, если слот менялся конкурентно дольше допустимого числа повторов
	ErrConcurrentUpdate = fmt.Errorf("%w: update_slot: slot is being modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: update_slot", domain.ErrInternal)
)
