package domain

import "time"

// Значения по умолчанию
const (
	DefaultMaxSimultaneous = 1
	DefaultCapacityMin     = 1
	DefaultCapacityMax     = 1
)

// Ограничения бизнес-валидации
const (
	MaxPersonsPerLine    = 50
	MaxProductQuantity   = 100
	MaxBlockReasonLength = 255
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DateOnly обнуляет время, оставляя календарную дату (в UTC)
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate проверяет, что две даты относятся к одному календарному дню
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня (время не учитывается)
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}
