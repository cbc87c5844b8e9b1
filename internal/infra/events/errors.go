package events

import "errors"

var (
	// ErrMarshalEvent возвращается при ошибке сериализации события
	ErrMarshalEvent = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке отправки события в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)
