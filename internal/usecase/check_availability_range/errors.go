package check_availability_range

import (
	"fmt"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_availability_range: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: check_availability_range", domain.ErrInternal)
)
