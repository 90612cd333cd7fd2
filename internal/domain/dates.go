package domain

import "time"

// Формат календарных дат во внешнем API и в БД
const DateFormat = "2006-01-02"

// DateOnly обнуляет время, оставляя только календарную дату (UTC)
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateBefore проверяет, что календарная дата a строго раньше даты b
func DateBefore(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}

// DaysBetween возвращает число календарных дней от a до b (b - a)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
