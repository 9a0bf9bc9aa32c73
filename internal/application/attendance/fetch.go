package attendance

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

// employeeScope filtros comunes sobre el maestro de empleados.
type employeeScope struct {
	Department string
	Employee   string
	Company    string
}

func (s *Service) employees(ctx context.Context, scope employeeScope) ([]workforce.EmployeeRef, error) {
	filters := []ports.Filter{ports.Eq("status", "Active")}
	if scope.Department != "" {
		filters = append(filters, ports.Eq("department", scope.Department))
	}
	if scope.Employee != "" {
		filters = append(filters, ports.Eq("name", scope.Employee))
	}
	if scope.Company != "" {
		filters = append(filters, ports.Eq("company", scope.Company))
	}

	var rows []entity.Employee
	err := s.erp.List(ctx, entity.DoctypeEmployee, ports.ListQuery{
		Fields:  []string{"name", "employee_name", "department", "default_shift", "company", "status"},
		Filters: filters,
		OrderBy: "name asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]workforce.EmployeeRef, 0, len(rows))
	for _, e := range rows {
		out = append(out, workforce.EmployeeRef{
			ID:           e.ID,
			Name:         e.EmployeeName,
			Department:   e.Department,
			DefaultShift: e.DefaultShift,
		})
	}
	return out, nil
}

// attendance trae los registros no cancelados del rango.
func (s *Service) attendance(ctx context.Context, from, to time.Time, employee string) ([]entity.Attendance, error) {
	filters := []ports.Filter{
		{Field: "attendance_date", Op: "between", Value: []string{workforce.DateKey(from), workforce.DateKey(to)}},
		{Field: "docstatus", Op: "!=", Value: entity.DocstatusCancelled},
	}
	if employee != "" {
		filters = append(filters, ports.Eq("employee", employee))
	}
	var rows []entity.Attendance
	err := s.erp.List(ctx, entity.DoctypeAttendance, ports.ListQuery{
		Fields:  []string{"name", "employee", "attendance_date", "status", "docstatus"},
		Filters: filters,
	}, &rows)
	return rows, err
}

// checkins trae los marcajes del rango ordenados por hora y descarta los que no se pueden leer.
func (s *Service) checkins(ctx context.Context, from, to time.Time, employee string) ([]workforce.Punch, error) {
	filters := []ports.Filter{
		{Field: "time", Op: ">=", Value: workforce.DateKey(from) + " 00:00:00"},
		{Field: "time", Op: "<=", Value: workforce.DateKey(to) + " 23:59:59.999999"},
	}
	if employee != "" {
		filters = append(filters, ports.Eq("employee", employee))
	}
	var rows []entity.EmployeeCheckin
	err := s.erp.List(ctx, entity.DoctypeEmployeeCheckin, ports.ListQuery{
		Fields:  []string{"name", "employee", "employee_name", "time", "log_type"},
		Filters: filters,
		OrderBy: "time asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]workforce.Punch, 0, len(rows))
	for _, r := range rows {
		ts, err := workforce.ParseTimestamp(r.Time)
		if err != nil {
			log.Warn().Str("checkin", r.ID).Str("time", r.Time).Msg("marcaje con hora ilegible, se omite")
			continue
		}
		out = append(out, workforce.Punch{Employee: r.Employee, EmployeeName: r.EmployeeName, Time: ts, LogType: r.LogType})
	}
	return out, nil
}

// shiftAssignments asignaciones enviadas que empiezan antes del fin del rango, por empleado.
func (s *Service) shiftAssignments(ctx context.Context, to time.Time) (map[string][]workforce.ShiftSpan, error) {
	var rows []entity.ShiftAssignment
	err := s.erp.List(ctx, entity.DoctypeShiftAssignment, ports.ListQuery{
		Fields: []string{"name", "employee", "shift_type", "start_date", "end_date", "status", "docstatus"},
		Filters: []ports.Filter{
			ports.Eq("docstatus", entity.DocstatusSubmitted),
			{Field: "start_date", Op: "<=", Value: workforce.DateKey(to)},
		},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := map[string][]workforce.ShiftSpan{}
	for _, r := range rows {
		if r.Status == "Inactive" {
			continue
		}
		start, err := workforce.ParseDate(r.StartDate)
		if err != nil {
			continue
		}
		span := workforce.ShiftSpan{ShiftType: r.ShiftType, From: start}
		if r.EndDate != "" {
			if end, err := workforce.ParseDate(r.EndDate); err == nil {
				span.To = end
			}
		}
		out[r.Employee] = append(out[r.Employee], span)
	}
	return out, nil
}

func (s *Service) shiftTypes(ctx context.Context) (map[string]workforce.ShiftWindow, error) {
	var rows []entity.ShiftType
	err := s.erp.List(ctx, entity.DoctypeShiftType, ports.ListQuery{
		Fields: []string{"name", "start_time", "end_time"},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make(map[string]workforce.ShiftWindow, len(rows))
	for _, r := range rows {
		start, err1 := workforce.ParseClock(r.StartTime)
		end, err2 := workforce.ParseClock(r.EndTime)
		if err1 != nil || err2 != nil {
			log.Warn().Str("shift_type", r.ID).Msg("turno con horario ilegible, se omite")
			continue
		}
		out[r.ID] = workforce.ShiftWindow{StartMinutes: start, EndMinutes: end}
	}
	return out, nil
}

func employeeSet(emps []workforce.EmployeeRef) map[string]bool {
	set := make(map[string]bool, len(emps))
	for _, e := range emps {
		set[e.ID] = true
	}
	return set
}
