package catalogservice

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден в каталоге
	ErrTourNotFound = errors.New("catalogservice: tour not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Каталог недоступен, ответ об доступности отдается без цены
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
