package create_slot

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_slot: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается, если дата слота в прошлом
	ErrInvalidDate = fmt.Errorf("%w: create_slot: date is in the past", domain.ErrValidation)

	// ErrSlotAlreadyExists возвращается, если слот на эту дату уже существует
	ErrSlotAlreadyExists = fmt.Errorf("%w: create_slot: slot already exists for resource and date", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_slot", domain.ErrInternal)
)
