package entity

// Attendance estado de asistencia de un empleado en una fecha.
type Attendance struct {
	ID             string `json:"name"`
	Employee       string `json:"employee"`
	EmployeeName   string `json:"employee_name,omitempty"`
	AttendanceDate string `json:"attendance_date"` // YYYY-MM-DD
	Status         string `json:"status"`
	Department     string `json:"department,omitempty"`
	Docstatus      int    `json:"docstatus"`
}

// EmployeeCheckin marcaje con log_type IN/OUT. El orden por Time es significativo.
type EmployeeCheckin struct {
	ID           string `json:"name"`
	Employee     string `json:"employee"`
	EmployeeName string `json:"employee_name,omitempty"`
	Time         string `json:"time"` // YYYY-MM-DD HH:mm:ss[.ffffff]
	LogType      string `json:"log_type,omitempty"`
}
