package catalogservice

import (
	"context"
	"errors"
	"fmt"
)

// DegradingClient применяет graceful degradation поверх источника цен.
// Отсутствие тура пробрасывается как есть, остальные ошибки заменяются на ErrServiceDegraded.
type DegradingClient struct {
	upstream PriceSource
	log      Logger
}

// NewDegradingClient создает декоратор graceful degradation
func NewDegradingClient(upstream PriceSource, log Logger) *DegradingClient {
	return &DegradingClient{
		upstream: upstream,
		log:      log,
	}
}

// GetTourPrice получает цену тура из источника
func (c *DegradingClient) GetTourPrice(ctx context.Context, resourceID string) (*TourPrice, error) {
	price, err := c.upstream.GetTourPrice(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ErrTourNotFound) {
			c.log.Info("Tour %s not found in catalog", resourceID)
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for tour=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: tour=%s, error=%v", ErrServiceDegraded, resourceID, err)
	}

	return price, nil
}
