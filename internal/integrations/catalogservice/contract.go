package catalogservice

import "context"

// PriceSource источник базовых цен (Client или другой CachedClient)
type PriceSource interface {
	GetTourPrice(ctx context.Context, resourceID string) (*TourPrice, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
