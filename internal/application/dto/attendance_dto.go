package dto

// AbsenceQuery parámetros de /api/reports/absence.
type AbsenceQuery struct {
	From       string `query:"from"`
	To         string `query:"to"`
	Threshold  int    `query:"threshold"`
	Department string `query:"department"`
	Employee   string `query:"employee"`
}

// OvertimeQuery parámetros de /api/reports/overtime.
type OvertimeQuery struct {
	From       string `query:"from"`
	To         string `query:"to"`
	Monthwise  bool   `query:"monthwise"`
	Department string `query:"department"`
	Employee   string `query:"employee"`
}

// HeadcountQuery parámetros de /api/reports/headcount. Cutoff HH:MM opcional.
type HeadcountQuery struct {
	Date    string `query:"date"`
	Cutoff  string `query:"cutoff"`
	Company string `query:"company"`
}

// PunchQuery parámetros de /api/reports/punches.
type PunchQuery struct {
	From       string `query:"from"`
	To         string `query:"to"`
	Department string `query:"department"`
	Employee   string `query:"employee"`
}

// AbsenceRow fila del reporte de ausencias consecutivas.
type AbsenceRow struct {
	Employee     string `json:"employee"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	Days         int    `json:"days"`
}

// OvertimeRow fila del reporte de horas extra.
type OvertimeRow struct {
	Employee        string `json:"employee"`
	EmployeeName    string `json:"employee_name"`
	Department      string `json:"department"`
	Month           string `json:"month,omitempty"`
	DaysCounted     int    `json:"days_counted"`
	WorkedMinutes   int    `json:"worked_minutes"`
	ExpectedMinutes int    `json:"expected_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	CompOffDays     int    `json:"comp_off_days"`
}

// HeadcountRow fila de ocupación por departamento.
type HeadcountRow struct {
	Department   string `json:"department"`
	Total        int    `json:"total"`
	Present      int    `json:"present"`
	HalfDay      int    `json:"half_day"`
	Absent       int    `json:"absent"`
	OnLeave      int    `json:"on_leave"`
	NotMarked    int    `json:"not_marked"`
	OccupancyPct int    `json:"occupancy_pct"`
}

// PunchRow resumen diario de marcajes.
type PunchRow struct {
	Employee      string `json:"employee"`
	EmployeeName  string `json:"employee_name"`
	Date          string `json:"date"`
	FirstIn       string `json:"first_in"`
	LastOut       string `json:"last_out"`
	Punches       int    `json:"punches"`
	WorkedMinutes int    `json:"worked_minutes"`
}

// ReportEnvelope respuesta JSON de los reportes de asistencia.
type ReportEnvelope[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

// QueryReportRequest cuerpo de POST /api/reports/query (frappe.desk.query_report.run).
type QueryReportRequest struct {
	ReportName string         `json:"report_name"`
	Filters    map[string]any `json:"filters"`
}

// QueryReportResponse columnas y filas devueltas por ERPNext.
type QueryReportResponse struct {
	Success bool  `json:"success"`
	Columns []any `json:"columns"`
	Result  []any `json:"result"`
}
