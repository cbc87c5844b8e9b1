package domain

// Бизнес-ограничения
const (
	MinCapacity          = 1
	MaxCapacity          = 10000
	MaxBulkUpdateEntries = 365 // один календарный год
	MaxRangeDays         = 365
	MaxNotesLength       = 500
	MaxResourceIDLength  = 64
	MaxConflictRetries   = 3 // повторы optimistic lock при конкурентных обновлениях

	// LimitedThresholdPercent - при остатке не больше этой доли вместимости слот считается LIMITED
	LimitedThresholdPercent = 20
)

// Пагинация и сортировка поиска
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Количество дат в списках пиковых и слабых дней статистики
	StatsTopDates = 5
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
