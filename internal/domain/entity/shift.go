package entity

// ShiftAssignment asignación de turno con vigencia; EndDate vacío significa abierta.
type ShiftAssignment struct {
	ID        string `json:"name"`
	Employee  string `json:"employee"`
	ShiftType string `json:"shift_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status,omitempty"`
	Docstatus int    `json:"docstatus"`
}

// ShiftType definición de turno; horas en formato H:MM:SS.
type ShiftType struct {
	ID        string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
