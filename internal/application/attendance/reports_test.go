package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/application/attendance"
	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

func newService(t *testing.T, erp *fakeERP) *attendance.Service {
	t.Helper()
	svc, err := attendance.NewService(erp, "10:00")
	require.NoError(t, err)
	return svc
}

func employees() []map[string]any {
	return []map[string]any{
		{"name": "EMP-001", "employee_name": "Ana", "department": "Ops", "default_shift": "General", "status": "Active"},
		{"name": "EMP-002", "employee_name": "Luis", "department": "Ops", "default_shift": "General", "status": "Active"},
	}
}

func checkin(emp, ts string) map[string]any {
	return map[string]any{"name": emp + ts, "employee": emp, "time": ts, "log_type": "IN"}
}

func TestAbsence(t *testing.T) {
	erp := newFakeERP()
	erp.rows[entity.DoctypeEmployee] = employees()
	var punches []map[string]any
	for _, d := range []string{"01", "06", "08", "09", "10"} {
		punches = append(punches, checkin("EMP-001", "2024-01-"+d+" 09:00:00"))
	}
	for d := 1; d <= 10; d++ {
		punches = append(punches, checkin("EMP-002", time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC).Format("2006-01-02 15:04:05")))
	}
	erp.rows[entity.DoctypeEmployeeCheckin] = punches

	rows, err := newService(t, erp).Absence(context.Background(), dto.AbsenceQuery{From: "2024-01-01", To: "2024-01-10", Threshold: 3})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dto.AbsenceRow{
		Employee: "EMP-001", EmployeeName: "Ana", Department: "Ops",
		FromDate: "2024-01-02", ToDate: "2024-01-05", Days: 4,
	}, rows[0])

	q := erp.queries[entity.DoctypeEmployee]
	assert.Contains(t, q.Filters, ports.Eq("status", "Active"))
}

func TestAbsence_Validacion(t *testing.T) {
	svc := newService(t, newFakeERP())
	cases := []dto.AbsenceQuery{
		{From: "", To: "2024-01-10", Threshold: 3},
		{From: "2024-13-01", To: "2024-01-10", Threshold: 3},
		{From: "2024-01-10", To: "2024-01-01", Threshold: 3},
		{From: "2023-01-01", To: "2024-01-10", Threshold: 3},
		{From: "2024-01-01", To: "2024-01-10", Threshold: 0},
	}
	for _, in := range cases {
		_, err := svc.Absence(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestAbsence_ErrorUpstream(t *testing.T) {
	erp := newFakeERP()
	erp.failOn = entity.DoctypeAttendance
	_, err := newService(t, erp).Absence(context.Background(), dto.AbsenceQuery{From: "2024-01-01", To: "2024-01-02", Threshold: 1})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestOvertime(t *testing.T) {
	erp := newFakeERP()
	erp.rows[entity.DoctypeEmployee] = employees()[:1]
	erp.rows[entity.DoctypeShiftType] = []map[string]any{{"name": "General", "start_time": "9:00:00", "end_time": "17:00:00"}}
	erp.rows[entity.DoctypeEmployeeCheckin] = []map[string]any{
		checkin("EMP-001", "2024-01-02 09:00:00"),
		checkin("EMP-001", "2024-01-02 19:30:00"),
	}

	rows, err := newService(t, erp).Overtime(context.Background(), dto.OvertimeQuery{From: "2024-01-01", To: "2024-01-07"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 150, rows[0].OvertimeMinutes)
	assert.Equal(t, 0, rows[0].CompOffDays)
}

func TestHeadcount(t *testing.T) {
	erp := newFakeERP()
	erp.rows[entity.DoctypeEmployee] = []map[string]any{
		{"name": "E1", "department": "Ops"},
		{"name": "E2", "department": "Ops"},
		{"name": "E3", "department": "Ops"},
		{"name": "E4", "department": "Ops"},
	}
	erp.rows[entity.DoctypeEmployeeCheckin] = []map[string]any{
		checkin("E1", "2024-01-02 08:00:00"),
		checkin("E2", "2024-01-02 09:59:00"),
		checkin("E3", "2024-01-02 10:30:00"),
	}
	erp.rows[entity.DoctypeAttendance] = []map[string]any{
		{"name": "ATT-1", "employee": "E4", "attendance_date": "2024-01-02", "status": "Absent", "docstatus": 1},
	}

	rows, err := newService(t, erp).Headcount(context.Background(), dto.HeadcountQuery{Date: "2024-01-02"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ops", rows[0].Department)
	assert.Equal(t, 2, rows[0].Present)
	assert.Equal(t, 1, rows[0].NotMarked)
	assert.Equal(t, 1, rows[0].Absent)
	assert.Equal(t, 50, rows[0].OccupancyPct)
	assert.Equal(t, "TOTAL", rows[1].Department)

	rows, err = newService(t, erp).Headcount(context.Background(), dto.HeadcountQuery{Date: "2024-01-02", Cutoff: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, 3, rows[0].Present, "con corte a las 11 el marcaje de las 10:30 cuenta")

	_, err = newService(t, erp).Headcount(context.Background(), dto.HeadcountQuery{Date: "02/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPunches_FiltraPorAlcance(t *testing.T) {
	erp := newFakeERP()
	erp.rows[entity.DoctypeEmployee] = employees()[:1]
	erp.rows[entity.DoctypeEmployeeCheckin] = []map[string]any{
		checkin("EMP-001", "2024-01-02 08:55:00"),
		checkin("EMP-001", "2024-01-02 17:10:00"),
		checkin("EMP-009", "2024-01-02 09:00:00"),
	}

	rows, err := newService(t, erp).Punches(context.Background(), dto.PunchQuery{From: "2024-01-02", To: "2024-01-02"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].EmployeeName)
	assert.Equal(t, "08:55:00", rows[0].FirstIn)
	assert.Equal(t, "17:10:00", rows[0].LastOut)
	assert.Equal(t, 495, rows[0].WorkedMinutes)
}

func TestQueryReport(t *testing.T) {
	erp := newFakeERP()
	erp.report = &ports.QueryReport{Columns: []any{"Employee"}, Result: []any{[]any{"EMP-001"}}}
	svc := newService(t, erp)

	out, err := svc.QueryReport(context.Background(), dto.QueryReportRequest{ReportName: "Monthly Attendance Sheet"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Len(t, out.Result, 1)

	_, err = svc.QueryReport(context.Background(), dto.QueryReportRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTables(t *testing.T) {
	tbl := attendance.AbsenceTable(dto.AbsenceQuery{From: "2024-01-01", To: "2024-01-10", Threshold: 3},
		[]dto.AbsenceRow{{Employee: "EMP-001", EmployeeName: "Ana", FromDate: "2024-01-02", ToDate: "2024-01-05", Days: 4}})
	assert.Equal(t, "Employee ID", tbl.Headers[0])
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "4", tbl.Rows[0][5])
}

func TestNewService_CorteInvalido(t *testing.T) {
	_, err := attendance.NewService(newFakeERP(), "diez")
	assert.Error(t, err)
}
