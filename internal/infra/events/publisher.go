package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

const (
	headerEventType = "event-type"

	defaultWriteTimeout = 5 * time.Second
)

// NewKafkaWriter создает writer для топика событий слотов.
// Сообщения одного ресурса попадают в одну партицию (Hash по ключу),
// поэтому их порядок сохраняется для потребителей.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
}

// KafkaPublisher публикует события изменения слотов в Kafka
type KafkaPublisher struct {
	writer       Writer
	writeTimeout time.Duration
	logger       Logger
	now          func() time.Time
}

// NewKafkaPublisher создает publisher. writeTimeout <= 0 заменяется значением по умолчанию.
func NewKafkaPublisher(writer Writer, writeTimeout time.Duration, logger Logger) *KafkaPublisher {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &KafkaPublisher{
		writer:       writer,
		writeTimeout: writeTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// PublishSlotChanged отправляет снимок слота. Ошибка возвращается вызывающему,
// который только логирует её: изменение слота уже зафиксировано.
func (p *KafkaPublisher) PublishSlotChanged(ctx context.Context, eventType EventType, slot *domain.Slot) error {
	event := NewSlotChangedEvent(eventType, slot, p.now())

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: PublishSlotChanged - marshal: %v", ErrMarshalEvent, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(slot.ResourceID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: PublishSlotChanged - event=%s slot=%d: %v", ErrPublish, event.EventID, slot.ID, err)
	}

	p.logger.Info("PublishSlotChanged: event=%s type=%s slot=%d", event.EventID, eventType, slot.ID)

	return nil
}

// Close закрывает writer, дожидаясь отправки буферизованных сообщений
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishSlotChanged(ctx context.Context, eventType EventType, slot *domain.Slot) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
