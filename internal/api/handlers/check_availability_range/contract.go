package check_availability_range

import (
	"context"

	checkRange "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability_range"
)

type CheckAvailabilityRangeUseCase interface {
	Execute(ctx context.Context, req *checkRange.Request) (*checkRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
