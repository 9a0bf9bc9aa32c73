package workforce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := workforce.ParseDate(s)
	require.NoError(t, err)
	return d
}

// punchedExcept marca con marcaje todos los días del rango salvo los indicados.
func punchedExcept(t *testing.T, from, to string, absent ...string) map[string]bool {
	t.Helper()
	skip := map[string]bool{}
	for _, a := range absent {
		skip[a] = true
	}
	out := map[string]bool{}
	for d := day(t, from); !d.After(day(t, to)); d = d.AddDate(0, 0, 1) {
		if !skip[workforce.DateKey(d)] {
			out[workforce.DateKey(d)] = true
		}
	}
	return out
}

var emp001 = workforce.EmployeeRef{ID: "EMP-001", Name: "Ana Pérez", Department: "Ops"}

// Ventana de 10 días (lun 2024-01-01 a mié 2024-01-10), ausente días 2–5.
func TestDetectAbsenceStreaks_UnaRacha(t *testing.T) {
	in := workforce.AbsenceInput{
		From:      day(t, "2024-01-01"),
		To:        day(t, "2024-01-10"),
		Threshold: 3,
		Employees: []workforce.EmployeeRef{emp001},
		Punched: map[string]map[string]bool{
			"EMP-001": punchedExcept(t, "2024-01-01", "2024-01-10",
				"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"),
		},
	}

	rows := workforce.DetectAbsenceStreaks(in)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP-001", rows[0].Employee)
	assert.Equal(t, "2024-01-02", workforce.DateKey(rows[0].From))
	assert.Equal(t, "2024-01-05", workforce.DateKey(rows[0].To))
	assert.Equal(t, 4, rows[0].Days)
}

// El domingo 2024-01-07 queda dentro de la racha: no la corta y no suma días.
func TestDetectAbsenceStreaks_DomingoTransparente(t *testing.T) {
	in := workforce.AbsenceInput{
		From:      day(t, "2024-01-04"),
		To:        day(t, "2024-01-13"),
		Threshold: 3,
		Employees: []workforce.EmployeeRef{emp001},
		Punched: map[string]map[string]bool{
			"EMP-001": punchedExcept(t, "2024-01-04", "2024-01-13",
				"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08"),
		},
	}

	rows := workforce.DetectAbsenceStreaks(in)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-05", workforce.DateKey(rows[0].From))
	assert.Equal(t, "2024-01-08", workforce.DateKey(rows[0].To), "el fin es el último día ausente real")
	assert.Equal(t, 3, rows[0].Days, "el domingo no cuenta")
}

func TestDetectAbsenceStreaks_EstadoNoAbsentCorta(t *testing.T) {
	in := workforce.AbsenceInput{
		From:      day(t, "2024-01-01"),
		To:        day(t, "2024-01-06"),
		Threshold: 2,
		Employees: []workforce.EmployeeRef{emp001},
		Statuses: map[string]map[string]string{
			"EMP-001": {
				"2024-01-01": entity.AttendanceAbsent,
				"2024-01-02": entity.AttendanceAbsent,
				"2024-01-03": entity.AttendanceOnLeave,
				"2024-01-04": entity.AttendanceAbsent,
				"2024-01-05": entity.AttendancePresent,
				"2024-01-06": entity.AttendancePresent,
			},
		},
	}

	rows := workforce.DetectAbsenceStreaks(in)
	require.Len(t, rows, 1, "la racha de un día (04) no alcanza el umbral")
	assert.Equal(t, "2024-01-01", workforce.DateKey(rows[0].From))
	assert.Equal(t, 2, rows[0].Days)
}

func TestDetectAbsenceStreaks_FlushFinal(t *testing.T) {
	in := workforce.AbsenceInput{
		From:      day(t, "2024-01-08"),
		To:        day(t, "2024-01-12"),
		Threshold: 3,
		Employees: []workforce.EmployeeRef{emp001, {ID: "EMP-002", Name: "Luis"}},
		Punched: map[string]map[string]bool{
			"EMP-001": {"2024-01-08": true},
			"EMP-002": punchedExcept(t, "2024-01-08", "2024-01-12"),
		},
	}

	rows := workforce.DetectAbsenceStreaks(in)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP-001", rows[0].Employee)
	assert.Equal(t, "2024-01-12", workforce.DateKey(rows[0].To))
	assert.Equal(t, 4, rows[0].Days)
}

func TestDetectAbsenceStreaks_UmbralMinimoUno(t *testing.T) {
	in := workforce.AbsenceInput{
		From:      day(t, "2024-01-08"),
		To:        day(t, "2024-01-08"),
		Threshold: 0,
		Employees: []workforce.EmployeeRef{emp001},
	}
	rows := workforce.DetectAbsenceStreaks(in)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Days)
}
