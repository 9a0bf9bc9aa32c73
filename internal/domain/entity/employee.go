package entity

// Employee maestro de empleados (propiedad de ERPNext). Las etiquetas json siguen los
// nombres de campo del doctype.
type Employee struct {
	ID            string `json:"name"`
	EmployeeName  string `json:"employee_name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Department    string `json:"department,omitempty"`
	Designation   string `json:"designation,omitempty"`
	Company       string `json:"company,omitempty"`
	Status        string `json:"status,omitempty"`
	DefaultShift  string `json:"default_shift,omitempty"`
	DateOfJoining string `json:"date_of_joining,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	BankAccountNo string `json:"bank_ac_no,omitempty"`
	PAN           string `json:"pan_number,omitempty"`
}
