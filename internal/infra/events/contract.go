package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Writer интерфейс отправки сообщений в Kafka (реализуется *kafka.Writer)
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
