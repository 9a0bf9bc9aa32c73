package workforce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

func TestSummarizeHeadcount_Ocupacion(t *testing.T) {
	in := workforce.HeadcountInput{
		CutoffMinutes: 10 * 60,
		Employees: []workforce.EmployeeRef{
			{ID: "E1", Department: "Ops"},
			{ID: "E2", Department: "Ops"},
			{ID: "E3", Department: "Ops"},
			{ID: "E4", Department: "Ops"},
			{ID: "E5", Department: "Admin"},
			{ID: "E6"},
		},
		Punches: map[string][]time.Time{
			"E1": {at(t, "2024-01-02 09:00:00")},
			"E2": {at(t, "2024-01-02 08:30:00"), at(t, "2024-01-02 18:00:00")},
			"E5": {at(t, "2024-01-02 10:30:00")},
		},
		Statuses: map[string]string{
			"E3": entity.AttendanceAbsent,
			"E5": entity.AttendanceHalfDay,
			"E6": entity.AttendanceOnLeave,
		},
	}

	rows := workforce.SummarizeHeadcount(in)
	require.Len(t, rows, 4)

	assert.Equal(t, "Admin", rows[0].Department)
	assert.Equal(t, 1, rows[0].HalfDay, "marcaje tardío cae al estado de asistencia")
	assert.Equal(t, 100, rows[0].OccupancyPct)

	ops := rows[1]
	assert.Equal(t, "Ops", ops.Department)
	assert.Equal(t, 4, ops.Total)
	assert.Equal(t, 2, ops.Present)
	assert.Equal(t, 1, ops.Absent)
	assert.Equal(t, 1, ops.NotMarked)
	assert.Equal(t, 50, ops.OccupancyPct)

	assert.Equal(t, workforce.UnassignedDepartment, rows[2].Department)
	assert.Equal(t, 1, rows[2].OnLeave)

	total := rows[3]
	assert.Equal(t, workforce.TotalRow, total.Department)
	assert.Equal(t, 6, total.Total)
	assert.Equal(t, 2, total.Present)
	assert.Equal(t, 1, total.HalfDay)
	assert.Equal(t, 50, total.OccupancyPct, "round(3/6*100)")
}

func TestSummarizeHeadcount_SinEmpleados(t *testing.T) {
	rows := workforce.SummarizeHeadcount(workforce.HeadcountInput{CutoffMinutes: 600})
	require.Len(t, rows, 1)
	assert.Equal(t, workforce.TotalRow, rows[0].Department)
	assert.Zero(t, rows[0].OccupancyPct)
}
