package domain

import "time"

// TruncateToDay приводит время к полуночи UTC того же календарного дня
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDate дата раньше текущего календарного дня (UTC)
func IsPastDate(date time.Time, now time.Time) bool {
	return TruncateToDay(date).Before(TruncateToDay(now.UTC()))
}

// DaysBetween количество дней от start до end (end - start)
func DaysBetween(start, end time.Time) int {
	return int(TruncateToDay(end).Sub(TruncateToDay(start)).Hours() / 24)
}

// ExpandDates разворачивает диапазон [start, end] по дням включительно
func ExpandDates(start, end time.Time) []time.Time {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if end.Before(start) {
		return nil
	}

	dates := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ValidateDateRange проверяет диапазон дат: start не позже end и
// длина не больше MaxRangeDays дней
func ValidateDateRange(start, end time.Time) error {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	if start.After(end) {
		return ErrRangeInverted
	}
	if DaysBetween(start, end) > MaxRangeDays {
		return ErrRangeTooLong
	}
	return nil
}
