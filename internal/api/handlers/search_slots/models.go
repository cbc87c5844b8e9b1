package search_slots

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
)

// parseQuery собирает запрос поиска из query параметров
func parseQuery(r *http.Request) (*models.SearchRequest, error) {
	q := r.URL.Query()
	req := &models.SearchRequest{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if id := strings.TrimSpace(q.Get("resourceId")); id != "" {
		req.ResourceID = &id
	}

	var err error
	if req.StartDate, err = handlers.ParseOptionalDate(q.Get("startDate")); err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	if req.EndDate, err = handlers.ParseOptionalDate(q.Get("endDate")); err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	if req.Available, err = handlers.ParseOptionalBool(q.Get("available")); err != nil {
		return nil, fmt.Errorf("available: %w", err)
	}
	if req.HasCapacity, err = handlers.ParseOptionalBool(q.Get("hasCapacity")); err != nil {
		return nil, fmt.Errorf("hasCapacity: %w", err)
	}
	if req.MinPrice, err = handlers.ParseOptionalDecimal(q.Get("minPrice")); err != nil {
		return nil, fmt.Errorf("minPrice: %w", err)
	}
	if req.MaxPrice, err = handlers.ParseOptionalDecimal(q.Get("maxPrice")); err != nil {
		return nil, fmt.Errorf("maxPrice: %w", err)
	}
	if req.Page, err = handlers.QueryInt(r, "page", 0); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	if req.Limit, err = handlers.QueryInt(r, "limit", 0); err != nil {
		return nil, fmt.Errorf("limit: %w", err)
	}

	return req, nil
}
