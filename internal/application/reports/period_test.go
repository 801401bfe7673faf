package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-admin/internal/domain"
)

// Miércoles 2025-06-18 10:30 como "ahora" de referencia.
func refNow(loc *time.Location) time.Time {
	return time.Date(2025, 6, 18, 10, 30, 0, 0, loc)
}

func TestPeriodRange(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	now := refNow(loc)

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	eod := func(t time.Time) time.Time { return t.Add(24*time.Hour - time.Nanosecond) }

	cases := []struct {
		keyword    string
		start, end time.Time
	}{
		{PeriodToday, day(2025, 6, 18), eod(day(2025, 6, 18))},
		{PeriodYesterday, day(2025, 6, 17), eod(day(2025, 6, 17))},
		{PeriodThisWeek, day(2025, 6, 16), eod(day(2025, 6, 18))},
		{PeriodLastWeek, day(2025, 6, 9), eod(day(2025, 6, 15))},
		{PeriodThisMonth, day(2025, 6, 1), eod(day(2025, 6, 18))},
		{PeriodLastMonth, day(2025, 5, 1), eod(day(2025, 5, 31))},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			start, end, err := PeriodRange(tc.keyword, now, loc)
			require.NoError(t, err)
			assert.True(t, start.Equal(tc.start), "start: esperado %s, obtenido %s", tc.start, start)
			assert.True(t, end.Equal(tc.end), "end: esperado %s, obtenido %s", tc.end, end)
		})
	}
}

// Un domingo pertenece a la semana que empezó el lunes anterior, no a la
// siguiente.
func TestPeriodRange_DomingoCierraSemana(t *testing.T) {
	loc := time.UTC
	sunday := time.Date(2025, 6, 22, 23, 0, 0, 0, loc)

	start, end, err := PeriodRange(PeriodThisWeek, sunday, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, loc).Add(-time.Nanosecond), end)
}

// El mes anterior se calcula desde el primero del mes actual, sin deslizarse
// por meses de distinta longitud.
func TestPeriodRange_MesAnteriorEnMarzo(t *testing.T) {
	loc := time.UTC
	march := time.Date(2025, 3, 31, 12, 0, 0, 0, loc)

	start, end, err := PeriodRange(PeriodLastMonth, march, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond), end)
}

func TestPeriodRange_PalabraDesconocida(t *testing.T) {
	_, _, err := PeriodRange("fortnight", time.Now(), time.UTC)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
