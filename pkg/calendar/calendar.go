// Package calendar provides business-day arithmetic for report date-range
// defaults. Weekends and fixed regional holidays are skipped.
package calendar

import "time"

// fixedHolidays are non-working dates that repeat every year (month, day).
var fixedHolidays = map[[2]int]struct{}{
	{1, 1}:   {}, // Año Nuevo
	{5, 1}:   {}, // Día del Trabajador
	{7, 9}:   {}, // Día de la Independencia
	{12, 25}: {}, // Navidad
}

// IsBusinessDay reports whether t falls on a working day.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := fixedHolidays[[2]int{int(t.Month()), t.Day()}]
	return !holiday
}

// BusinessDaysBefore walks backwards from t until n business days have
// passed and returns the resulting date at midnight UTC.
func BusinessDaysBefore(t time.Time, n int) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for n > 0 {
		day = day.AddDate(0, 0, -1)
		if IsBusinessDay(day) {
			n--
		}
	}
	return day
}

// NextBusinessDay returns the first business day strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for {
		day = day.AddDate(0, 0, 1)
		if IsBusinessDay(day) {
			return day
		}
	}
}
