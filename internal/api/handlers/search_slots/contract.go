package search_slots

import (
	"context"

	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
)

type SlotService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
