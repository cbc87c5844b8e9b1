package adjust_capacity

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: adjust_capacity: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается при попытке забронировать прошедшую дату
	ErrInvalidDate = fmt.Errorf("%w: adjust_capacity: date is in the past", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда слота на дату нет
	ErrSlotNotFound = fmt.Errorf("%w: adjust_capacity: slot not found", domain.ErrNotFound)

	// ErrInsufficientCapacity возвращается, если мест не хватает (или освобождается больше, чем занято)
	ErrInsufficientCapacity = fmt.Errorf("%w: adjust_capacity: insufficient capacity", domain.ErrConflict)

	// ErrSlotUnavailable возвращается при бронировании заблокированного слота
	ErrSlotUnavailable = fmt.Errorf("%w: adjust_capacity: slot is blocked", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: adjust_capacity", domain.ErrInternal)
)
