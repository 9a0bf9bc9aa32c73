package entity

import "github.com/shopspring/decimal"

// LeaveAllocation asignación de días de permiso por tipo y vigencia.
type LeaveAllocation struct {
	ID                   string          `json:"name,omitempty"`
	Employee             string          `json:"employee"`
	EmployeeName         string          `json:"employee_name,omitempty"`
	LeaveType            string          `json:"leave_type"`
	FromDate             string          `json:"from_date"`
	ToDate               string          `json:"to_date"`
	NewLeavesAllocated   decimal.Decimal `json:"new_leaves_allocated"`
	TotalLeavesAllocated decimal.Decimal `json:"total_leaves_allocated"`
	Docstatus            int             `json:"docstatus"`
}
