package entity

// Doctypes de ERPNext consumidos por el portal.
const (
	DoctypeEmployee        = "Employee"
	DoctypeDepartment      = "Department"
	DoctypeDesignation     = "Designation"
	DoctypeHolidayList     = "Holiday List"
	DoctypeAttendance      = "Attendance"
	DoctypeEmployeeCheckin = "Employee Checkin"
	DoctypeShiftAssignment = "Shift Assignment"
	DoctypeShiftType       = "Shift Type"
	DoctypeLeaveAllocation = "Leave Allocation"
)

// Estados de Attendance en ERPNext.
const (
	AttendancePresent      = "Present"
	AttendanceAbsent       = "Absent"
	AttendanceHalfDay      = "Half Day"
	AttendanceOnLeave      = "On Leave"
	AttendanceWorkFromHome = "Work From Home"
)

// Docstatus de documentos enviables.
const (
	DocstatusDraft     = 0
	DocstatusSubmitted = 1
	DocstatusCancelled = 2
)
