package reports

import (
	"time"

	"github.com/tu-usuario/resto-admin/internal/domain"
)

// Palabras clave de período aceptadas por los reportes.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodThisWeek  = "this_week"
	PeriodLastWeek  = "last_week"
	PeriodThisMonth = "this_month"
	PeriodLastMonth = "last_month"
)

// PeriodRange convierte la palabra clave en [start, end] en la zona horaria
// indicada. Las semanas empiezan lunes; los rangos terminan al final del día.
func PeriodRange(keyword string, now time.Time, loc *time.Location) (start, end time.Time, err error) {
	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endOfDay := func(t time.Time) time.Time {
		return t.Add(24*time.Hour - time.Nanosecond)
	}

	switch keyword {
	case PeriodToday:
		return dayStart, endOfDay(dayStart), nil
	case PeriodYesterday:
		y := dayStart.AddDate(0, 0, -1)
		return y, endOfDay(y), nil
	case PeriodThisWeek:
		return mondayOf(dayStart), endOfDay(dayStart), nil
	case PeriodLastWeek:
		monday := mondayOf(dayStart).AddDate(0, 0, -7)
		return monday, endOfDay(monday.AddDate(0, 0, 6)), nil
	case PeriodThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, endOfDay(dayStart), nil
	case PeriodLastMonth:
		firstThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		firstLast := firstThis.AddDate(0, -1, 0)
		return firstLast, endOfDay(firstThis.AddDate(0, 0, -1)), nil
	}
	return time.Time{}, time.Time{}, domain.ErrValidation
}

// mondayOf devuelve el lunes 00:00 de la semana de t.
func mondayOf(dayStart time.Time) time.Time {
	weekday := int(dayStart.Weekday())
	if weekday == 0 { // domingo
		weekday = 7
	}
	return dayStart.AddDate(0, 0, -(weekday - 1))
}
