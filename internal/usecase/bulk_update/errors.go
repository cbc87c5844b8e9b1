package bulk_update

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrBatchTooLarge возвращается, если в пакете больше domain.MaxBulkUpdateEntries записей
	ErrBatchTooLarge = fmt.Errorf("%w: bulk_update: batch exceeds %d entries", domain.ErrLimitExceeded, domain.MaxBulkUpdateEntries)

	// ErrEmptyBatch возвращается, если пакет пуст
	ErrEmptyBatch = fmt.Errorf("%w: bulk_update: batch is empty", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных (пакета или записи)
	ErrInvalidInput = fmt.Errorf("%w: bulk_update: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается при создании слота на прошедшую дату
	ErrInvalidDate = fmt.Errorf("%w: bulk_update: date is in the past", domain.ErrValidation)

	// ErrDuplicateDate возвращается для повторной даты внутри одного пакета
	ErrDuplicateDate = fmt.Errorf("%w: bulk_update: duplicate date in batch", domain.ErrValidation)

	// ErrConcurrentUpdate возвращается, если запись не удалось применить из-за конкурентных изменений
	ErrConcurrentUpdate = fmt.Errorf("%w: bulk_update: slot is being modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: bulk_update", domain.ErrInternal)
)
