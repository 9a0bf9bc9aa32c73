package leave

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

// uploadWorkers filas procesadas en paralelo contra ERPNext.
const uploadWorkers = 4

// UseCase carga masiva de asignaciones de permisos y plantilla descargable.
type UseCase struct {
	erp    ports.ERPClient
	reader ports.SpreadsheetReader
	writer ports.SpreadsheetWriter
	locks  *keyLock
}

// NewUseCase construye el caso de uso.
func NewUseCase(erp ports.ERPClient, reader ports.SpreadsheetReader, writer ports.SpreadsheetWriter) *UseCase {
	return &UseCase{erp: erp, reader: reader, writer: writer, locks: newKeyLock()}
}

// Upload lee la planilla y hace upsert de cada fila. Solo un archivo ilegible o sin
// encabezado falla completo; los errores de fila se acumulan en el resultado.
func (uc *UseCase) Upload(ctx context.Context, filename string, r io.Reader) (*dto.LeaveUploadResult, error) {
	raw, err := uc.reader.ReadRows(filename, r)
	if err != nil {
		return nil, err
	}
	rows, bad, err := ParseRows(raw)
	if err != nil {
		return nil, err
	}

	res := &dto.LeaveUploadResult{Errors: append([]dto.LeaveRowError{}, bad...)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadWorkers)
	for _, row := range rows {
		row := row
		g.Go(func() error {
			created, err := uc.upsert(gctx, row)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				log.Warn().Err(err).Int("row", row.Row).Str("employee", row.Employee).Msg("fila de asignación rechazada")
				res.Errors = append(res.Errors, dto.LeaveRowError{Row: row.Row, Employee: row.Employee, Message: err.Error()})
			case created:
				res.Created++
			default:
				res.Updated++
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].Row < res.Errors[j].Row })
	res.Failed = len(res.Errors)
	res.Success = res.Failed == 0
	return res, nil
}

// upsert suma a la asignación existente del mismo empleado, tipo y mes, o crea una nueva.
// La clave se serializa para que dos filas del mismo mes no creen duplicados.
func (uc *UseCase) upsert(ctx context.Context, row dto.LeaveRow) (bool, error) {
	from, err := workforce.ParseDate(row.FromDate)
	if err != nil {
		return false, err
	}
	month := workforce.MonthKey(from)
	unlock := uc.locks.Lock(row.Employee + "|" + row.LeaveType + "|" + month)
	defer unlock()

	monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var existing []entity.LeaveAllocation
	err = uc.erp.List(ctx, entity.DoctypeLeaveAllocation, ports.ListQuery{
		Fields: []string{"name", "employee", "leave_type", "from_date", "to_date", "new_leaves_allocated", "docstatus"},
		Filters: []ports.Filter{
			ports.Eq("employee", row.Employee),
			ports.Eq("leave_type", row.LeaveType),
			{Field: "docstatus", Op: "!=", Value: entity.DocstatusCancelled},
			{Field: "from_date", Op: "between", Value: []string{workforce.DateKey(monthStart), workforce.DateKey(monthEnd)}},
		},
		Limit: 1,
	}, &existing)
	if err != nil {
		return false, fmt.Errorf("buscar asignación: %w", err)
	}

	if len(existing) > 0 {
		cur := existing[0]
		total := cur.NewLeavesAllocated.Add(row.Leaves)
		err := uc.erp.Update(ctx, entity.DoctypeLeaveAllocation, cur.ID, map[string]any{
			"new_leaves_allocated": total.InexactFloat64(),
		}, nil)
		if err != nil {
			return false, fmt.Errorf("actualizar %s: %w", cur.ID, err)
		}
		return false, nil
	}

	err = uc.erp.Create(ctx, entity.DoctypeLeaveAllocation, map[string]any{
		"employee":             row.Employee,
		"leave_type":           row.LeaveType,
		"from_date":            row.FromDate,
		"to_date":              row.ToDate,
		"new_leaves_allocated": row.Leaves.InexactFloat64(),
	}, nil)
	if err != nil {
		return false, fmt.Errorf("crear asignación: %w", err)
	}
	return true, nil
}

// Template planilla con los empleados activos y las columnas de carga vacías.
func (uc *UseCase) Template(ctx context.Context) ([]byte, error) {
	var emps []entity.Employee
	err := uc.erp.List(ctx, entity.DoctypeEmployee, ports.ListQuery{
		Fields:  []string{"name", "employee_name"},
		Filters: []ports.Filter{ports.Eq("status", "Active")},
		OrderBy: "name asc",
	}, &emps)
	if err != nil {
		return nil, fmt.Errorf("plantilla de asignaciones: %w", err)
	}

	t := ports.ReportTable{Title: "Leave Allocation Upload", Headers: TemplateHeaders}
	for _, e := range emps {
		t.Rows = append(t.Rows, []string{e.ID, e.EmployeeName, "", "", "", ""})
	}
	return uc.writer.WriteTable(t)
}
