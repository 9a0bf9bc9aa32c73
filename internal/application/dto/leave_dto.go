package dto

import "github.com/shopspring/decimal"

// LeaveRow fila ya interpretada de la planilla de asignaciones.
type LeaveRow struct {
	Row          int // número de fila en la planilla (1-based)
	Employee     string
	EmployeeName string
	LeaveType    string
	FromDate     string // YYYY-MM-DD
	ToDate       string
	Leaves       decimal.Decimal
}

// LeaveRowError fallo de una fila; no aborta la carga.
type LeaveRowError struct {
	Row      int    `json:"row"`
	Employee string `json:"employee,omitempty"`
	Message  string `json:"message"`
}

// LeaveUploadResult resumen de la carga.
type LeaveUploadResult struct {
	Success bool            `json:"success"`
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Failed  int             `json:"failed"`
	Errors  []LeaveRowError `json:"errors"`
}
