package attendance

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/application/dto"
)

// Encabezados de exportación; "Employee ID" encabeza para que la planilla pueda reimportarse.
var (
	absenceHeaders   = []string{"Employee ID", "Employee Name", "Department", "From Date", "To Date", "Days"}
	overtimeHeaders  = []string{"Employee ID", "Employee Name", "Department", "Month", "Days Counted", "Worked Minutes", "Expected Minutes", "Overtime Minutes", "Comp-Off Days"}
	headcountHeaders = []string{"Department", "Total", "Present", "Half Day", "Absent", "On Leave", "Not Marked", "Occupancy %"}
	punchHeaders     = []string{"Employee ID", "Employee Name", "Date", "First In", "Last Out", "Punches", "Worked Minutes"}
)

// AbsenceTable tabla exportable del reporte de ausencias.
func AbsenceTable(q dto.AbsenceQuery, rows []dto.AbsenceRow) ports.ReportTable {
	t := ports.ReportTable{
		Title:    "Consecutive Absence Report",
		Subtitle: fmt.Sprintf("%s to %s, threshold %d days", q.From, q.To, q.Threshold),
		Headers:  absenceHeaders,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Employee, r.EmployeeName, r.Department, r.FromDate, r.ToDate, strconv.Itoa(r.Days)})
	}
	return t
}

// OvertimeTable tabla exportable del reporte de horas extra.
func OvertimeTable(q dto.OvertimeQuery, rows []dto.OvertimeRow) ports.ReportTable {
	t := ports.ReportTable{
		Title:    "Overtime Report",
		Subtitle: fmt.Sprintf("%s to %s", q.From, q.To),
		Headers:  overtimeHeaders,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Employee, r.EmployeeName, r.Department, r.Month,
			strconv.Itoa(r.DaysCounted), strconv.Itoa(r.WorkedMinutes), strconv.Itoa(r.ExpectedMinutes),
			strconv.Itoa(r.OvertimeMinutes), strconv.Itoa(r.CompOffDays),
		})
	}
	return t
}

// HeadcountTable tabla exportable de ocupación.
func HeadcountTable(q dto.HeadcountQuery, rows []dto.HeadcountRow) ports.ReportTable {
	t := ports.ReportTable{
		Title:    "Headcount Summary",
		Subtitle: q.Date,
		Headers:  headcountHeaders,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Department, strconv.Itoa(r.Total), strconv.Itoa(r.Present), strconv.Itoa(r.HalfDay),
			strconv.Itoa(r.Absent), strconv.Itoa(r.OnLeave), strconv.Itoa(r.NotMarked), strconv.Itoa(r.OccupancyPct),
		})
	}
	return t
}

// PunchTable tabla exportable del resumen de marcajes.
func PunchTable(q dto.PunchQuery, rows []dto.PunchRow) ports.ReportTable {
	t := ports.ReportTable{
		Title:    "Daily Punch Summary",
		Subtitle: fmt.Sprintf("%s to %s", q.From, q.To),
		Headers:  punchHeaders,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Employee, r.EmployeeName, r.Date, r.FirstIn, r.LastOut, strconv.Itoa(r.Punches), strconv.Itoa(r.WorkedMinutes),
		})
	}
	return t
}
