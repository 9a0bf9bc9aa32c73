package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

const clockLayout = "15:04:05"

// Absence rachas de ausencia consecutiva de al menos Threshold días.
func (s *Service) Absence(ctx context.Context, in dto.AbsenceQuery) ([]dto.AbsenceRow, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	if in.Threshold < 1 {
		return nil, fmt.Errorf("%w: threshold must be at least 1", domain.ErrInvalidInput)
	}

	var (
		emps    []workforce.EmployeeRef
		atts    []entity.Attendance
		punches []workforce.Punch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emps, err = s.employees(gctx, employeeScope{Department: in.Department, Employee: in.Employee})
		return err
	})
	g.Go(func() (err error) {
		atts, err = s.attendance(gctx, from, to, in.Employee)
		return err
	})
	g.Go(func() (err error) {
		punches, err = s.checkins(gctx, from, to, in.Employee)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de ausencias: %w", err)
	}

	statuses := map[string]map[string]string{}
	for _, a := range atts {
		if statuses[a.Employee] == nil {
			statuses[a.Employee] = map[string]string{}
		}
		statuses[a.Employee][a.AttendanceDate] = a.Status
	}
	punched := map[string]map[string]bool{}
	for _, p := range punches {
		if punched[p.Employee] == nil {
			punched[p.Employee] = map[string]bool{}
		}
		punched[p.Employee][workforce.DateKey(p.Time)] = true
	}

	streaks := workforce.DetectAbsenceStreaks(workforce.AbsenceInput{
		From:      from,
		To:        to,
		Threshold: in.Threshold,
		Employees: emps,
		Statuses:  statuses,
		Punched:   punched,
	})
	out := make([]dto.AbsenceRow, 0, len(streaks))
	for _, st := range streaks {
		out = append(out, dto.AbsenceRow{
			Employee:     st.Employee,
			EmployeeName: st.EmployeeName,
			Department:   st.Department,
			FromDate:     workforce.DateKey(st.From),
			ToDate:       workforce.DateKey(st.To),
			Days:         st.Days,
		})
	}
	return out, nil
}

// Overtime horas extra por empleado (o por empleado y mes) y días compensatorios.
func (s *Service) Overtime(ctx context.Context, in dto.OvertimeQuery) ([]dto.OvertimeRow, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	var (
		emps        []workforce.EmployeeRef
		punches     []workforce.Punch
		assignments map[string][]workforce.ShiftSpan
		shifts      map[string]workforce.ShiftWindow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emps, err = s.employees(gctx, employeeScope{Department: in.Department, Employee: in.Employee})
		return err
	})
	g.Go(func() (err error) {
		punches, err = s.checkins(gctx, from, to, in.Employee)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = s.shiftAssignments(gctx, to)
		return err
	})
	g.Go(func() (err error) {
		shifts, err = s.shiftTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de horas extra: %w", err)
	}

	rows := workforce.ComputeOvertime(workforce.OvertimeInput{
		From:        from,
		To:          to,
		Monthwise:   in.Monthwise,
		Employees:   emps,
		Assignments: assignments,
		Shifts:      shifts,
		Punches:     workforce.GroupByDate(punches),
	})
	out := make([]dto.OvertimeRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OvertimeRow{
			Employee:        r.Employee,
			EmployeeName:    r.EmployeeName,
			Department:      r.Department,
			Month:           r.Month,
			DaysCounted:     r.DaysCounted,
			WorkedMinutes:   r.WorkedMinutes,
			ExpectedMinutes: r.ExpectedMinutes,
			OvertimeMinutes: r.OvertimeMinutes,
			CompOffDays:     r.CompOffDays,
		})
	}
	return out, nil
}

// Headcount ocupación por departamento en un día; sin fecha usa la de hoy.
func (s *Service) Headcount(ctx context.Context, in dto.HeadcountQuery) ([]dto.HeadcountRow, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(in.Date) != "" {
		d, err := time.Parse(workforce.DateLayout, strings.TrimSpace(in.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, in.Date)
		}
		day = d
	}
	cutoff := s.cutoffMinutes
	if strings.TrimSpace(in.Cutoff) != "" {
		c, err := workforce.ParseClock(in.Cutoff)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cutoff %q", domain.ErrInvalidInput, in.Cutoff)
		}
		cutoff = c
	}

	var (
		emps    []workforce.EmployeeRef
		atts    []entity.Attendance
		punches []workforce.Punch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emps, err = s.employees(gctx, employeeScope{Company: in.Company})
		return err
	})
	g.Go(func() (err error) {
		atts, err = s.attendance(gctx, day, day, "")
		return err
	})
	g.Go(func() (err error) {
		punches, err = s.checkins(gctx, day, day, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de ocupación: %w", err)
	}

	statuses := make(map[string]string, len(atts))
	for _, a := range atts {
		statuses[a.Employee] = a.Status
	}
	byEmp := map[string][]time.Time{}
	for _, p := range punches {
		byEmp[p.Employee] = append(byEmp[p.Employee], p.Time)
	}

	rows := workforce.SummarizeHeadcount(workforce.HeadcountInput{
		CutoffMinutes: cutoff,
		Employees:     emps,
		Punches:       byEmp,
		Statuses:      statuses,
	})
	out := make([]dto.HeadcountRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.HeadcountRow(r))
	}
	return out, nil
}

// Punches resumen diario de marcajes de los empleados activos del alcance.
func (s *Service) Punches(ctx context.Context, in dto.PunchQuery) ([]dto.PunchRow, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	var (
		emps    []workforce.EmployeeRef
		punches []workforce.Punch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emps, err = s.employees(gctx, employeeScope{Department: in.Department, Employee: in.Employee})
		return err
	})
	g.Go(func() (err error) {
		punches, err = s.checkins(gctx, from, to, in.Employee)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de marcajes: %w", err)
	}

	allowed := employeeSet(emps)
	names := make(map[string]string, len(emps))
	for _, e := range emps {
		names[e.ID] = e.Name
	}
	kept := punches[:0]
	for _, p := range punches {
		if !allowed[p.Employee] {
			continue
		}
		if p.EmployeeName == "" {
			p.EmployeeName = names[p.Employee]
		}
		kept = append(kept, p)
	}

	daily := workforce.SummarizePunches(kept)
	out := make([]dto.PunchRow, 0, len(daily))
	for _, d := range daily {
		out = append(out, dto.PunchRow{
			Employee:      d.Employee,
			EmployeeName:  d.EmployeeName,
			Date:          d.Date,
			FirstIn:       d.FirstIn.Format(clockLayout),
			LastOut:       d.LastOut.Format(clockLayout),
			Punches:       d.Punches,
			WorkedMinutes: d.WorkedMinutes,
		})
	}
	return out, nil
}

// QueryReport proxy a un reporte de consulta de ERPNext.
func (s *Service) QueryReport(ctx context.Context, in dto.QueryReportRequest) (*dto.QueryReportResponse, error) {
	name := strings.TrimSpace(in.ReportName)
	if name == "" {
		return nil, fmt.Errorf("%w: report_name is required", domain.ErrInvalidInput)
	}
	rep, err := s.erp.RunQueryReport(ctx, name, in.Filters)
	if err != nil {
		return nil, fmt.Errorf("reporte %q: %w", name, err)
	}
	out := &dto.QueryReportResponse{Success: true, Columns: rep.Columns, Result: rep.Result}
	if out.Columns == nil {
		out.Columns = []any{}
	}
	if out.Result == nil {
		out.Result = []any{}
	}
	return out, nil
}
