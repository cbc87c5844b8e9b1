package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
)

// EventType тип события изменения слота
type EventType string

const (
	SlotCreated         EventType = "slot.created"
	SlotUpdated         EventType = "slot.updated"
	SlotCapacityChanged EventType = "slot.capacity_changed"
)

// SlotChangedEvent снимок слота после успешного изменения
type SlotChangedEvent struct {
	EventID        string    `json:"eventId"`
	EventType      EventType `json:"eventType"`
	SlotID         int64     `json:"slotId"`
	ResourceID     string    `json:"resourceId"`
	Date           string    `json:"date"`
	MaxCapacity    int       `json:"maxCapacity"`
	BookedCount    int       `json:"bookedCount"`
	AvailableCount int       `json:"availableCount"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewSlotChangedEvent собирает событие из состояния слота
func NewSlotChangedEvent(eventType EventType, slot *domain.Slot, occurredAt time.Time) SlotChangedEvent {
	return SlotChangedEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		SlotID:         slot.ID,
		ResourceID:     slot.ResourceID,
		Date:           slot.Date.Format(domain.DateFormat),
		MaxCapacity:    slot.MaxCapacity,
		BookedCount:    slot.BookedCount,
		AvailableCount: slot.AvailableCount(),
		Status:         string(slot.Status()),
		OccurredAt:     occurredAt.UTC(),
	}
}
