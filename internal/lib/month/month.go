// Package month содержит вспомогательные вычисления календарных границ месяца.
package month

import (
	"time"
)

// Range возвращает первый и последний день месяца включительно.
// Последний день вычисляется из фактической длины месяца (28–31 день,
// с учётом високосного февраля), а не фиксированным сдвигом на 30 дней.
func Range(year int, m time.Month) (time.Time, time.Time) {
	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
