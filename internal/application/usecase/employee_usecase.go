package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

// EmployeeExportHeaders columnas de la exportación de empleados.
var EmployeeExportHeaders = []string{"Employee ID", "Employee Name", "Department", "Designation", "Company", "Status", "Date of Joining"}

// EmployeeUseCase exportación del maestro de empleados.
type EmployeeUseCase struct {
	erp    ports.ERPClient
	writer ports.SpreadsheetWriter
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(erp ports.ERPClient, writer ports.SpreadsheetWriter) *EmployeeUseCase {
	return &EmployeeUseCase{erp: erp, writer: writer}
}

// Export genera el .xlsx; status vacío exporta todos los empleados.
func (uc *EmployeeUseCase) Export(ctx context.Context, status string) ([]byte, error) {
	q := ports.ListQuery{
		Fields:  []string{"name", "employee_name", "department", "designation", "company", "status", "date_of_joining"},
		OrderBy: "name asc",
	}
	if status != "" {
		q.Filters = []ports.Filter{ports.Eq("status", status)}
	}
	var emps []entity.Employee
	if err := uc.erp.List(ctx, entity.DoctypeEmployee, q, &emps); err != nil {
		return nil, fmt.Errorf("exportar empleados: %w", err)
	}

	t := ports.ReportTable{Title: "Employees", Headers: EmployeeExportHeaders}
	for _, e := range emps {
		t.Rows = append(t.Rows, []string{e.ID, e.EmployeeName, e.Department, e.Designation, e.Company, e.Status, e.DateOfJoining})
	}
	return uc.writer.WriteTable(t)
}
