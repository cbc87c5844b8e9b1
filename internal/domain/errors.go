package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок. Ошибки usecase и сервисов оборачивают один из них,
// HTTP слой выбирает код ответа через errors.Is.
var (
	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation error")

	// ErrConflict конфликт с текущим состоянием (дубликат, нехватка мест, гонка)
	ErrConflict = errors.New("conflict")

	// ErrNotFound объект не найден или нет данных
	ErrNotFound = errors.New("not found")

	// ErrLimitExceeded превышен размер пакета
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrInternal ошибка хранилища или инфраструктуры
	ErrInternal = errors.New("internal error")
)

// Ошибки инвариантов слота
var (
	ErrCapacityTooLow   = errors.New("max_capacity must be at least 1")
	ErrBookedOutOfRange = errors.New("booked_count must be between 0 and max_capacity")
)

// Ошибки диапазона дат
var (
	ErrRangeInverted = fmt.Errorf("%w: start_date must not be after end_date", ErrValidation)
	ErrRangeTooLong  = fmt.Errorf("%w: date range must not exceed %d days", ErrValidation, MaxRangeDays)
)

// ErrorCode короткий код класса ошибки для ответов API
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// MetricResult метка результата операции для метрик: success или код класса ошибки
func MetricResult(err error) string {
	if err == nil {
		return "success"
	}
	return ErrorCode(err)
}
