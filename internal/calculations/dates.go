package calculations

import (
	"math"
	"time"
)

const daysPerYear = 365

// PaymentDate возвращает дату платежа периода k+1 (при k = 0 это дата первого платежа).
// Дата всегда считается от start, поэтому усечение конца месяца не накапливается.
func PaymentDate(start time.Time, paymentsPerYear, k int) time.Time {
	if k == 0 {
		return start
	}
	if 12%paymentsPerYear == 0 {
		return addMonthsClamped(start, k*12/paymentsPerYear)
	}
	step := int(math.Round(float64(daysPerYear) / float64(paymentsPerYear)))
	return start.AddDate(0, 0, k*step)
}

// addMonthsClamped прибавляет месяцы, ограничивая день последним днем целевого месяца
// (31 января + 1 месяц = 29 февраля в високосный год).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
