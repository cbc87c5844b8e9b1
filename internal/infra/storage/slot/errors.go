package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyExists возвращается при нарушении уникальности (resource_id, slot_date)
	ErrSlotAlreadyExists = errors.New("slot.repository: slot already exists for resource and date")

	// ErrVersionConflict возвращается, когда слот изменился после чтения (optimistic lock)
	ErrVersionConflict = errors.New("slot.repository: slot version conflict")

	// ErrInsufficientCapacity возвращается, когда изменение booked_count нарушает вместимость
	ErrInsufficientCapacity = errors.New("slot.repository: insufficient capacity")

	// ErrSlotBlocked возвращается при попытке бронирования заблокированного слота
	ErrSlotBlocked = errors.New("slot.repository: slot is blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
