package leave

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

// Encabezados de la planilla de asignaciones.
const (
	ColEmployeeID   = "Employee ID"
	ColEmployeeName = "Employee Name"
	ColLeaveType    = "Leave Type"
	ColFromDate     = "From Date"
	ColToDate       = "To Date"
	ColLeaves       = "Leaves"
)

// TemplateHeaders orden de columnas de la plantilla descargable.
var TemplateHeaders = []string{ColEmployeeID, ColEmployeeName, ColLeaveType, ColFromDate, ColToDate, ColLeaves}

var requiredColumns = []string{ColEmployeeID, ColLeaveType, ColFromDate, ColToDate, ColLeaves}

var dateLayouts = []string{workforce.DateLayout, "02-01-2006", "02/01/2006", "2-1-2006", "2/1/2006"}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// locateHeader busca la primera fila con una celda "Employee ID" y devuelve su índice y
// el mapa encabezado normalizado -> columna.
func locateHeader(rows [][]string) (int, map[string]int, error) {
	target := normalizeHeader(ColEmployeeID)
	for i, row := range rows {
		for _, cell := range row {
			if normalizeHeader(cell) != target {
				continue
			}
			cols := map[string]int{}
			for j, c := range row {
				key := normalizeHeader(c)
				if _, dup := cols[key]; key != "" && !dup {
					cols[key] = j
				}
			}
			var missing []string
			for _, req := range requiredColumns {
				if _, ok := cols[normalizeHeader(req)]; !ok {
					missing = append(missing, req)
				}
			}
			if len(missing) > 0 {
				return 0, nil, fmt.Errorf("%w: missing columns: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
			}
			return i, cols, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: header row with %q not found", domain.ErrInvalidInput, ColEmployeeID)
}

// ParseRows interpreta las filas de datos bajo el encabezado. Las filas vacías se saltan;
// las inválidas se devuelven como errores sin detener el resto.
func ParseRows(rows [][]string) ([]dto.LeaveRow, []dto.LeaveRowError, error) {
	headerIdx, cols, err := locateHeader(rows)
	if err != nil {
		return nil, nil, err
	}
	cell := func(row []string, name string) string {
		idx, ok := cols[normalizeHeader(name)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var out []dto.LeaveRow
	var bad []dto.LeaveRowError
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		line := i + 1
		emp := cell(row, ColEmployeeID)
		fail := func(format string, args ...any) {
			bad = append(bad, dto.LeaveRowError{Row: line, Employee: emp, Message: fmt.Sprintf(format, args...)})
		}

		leaveType := cell(row, ColLeaveType)
		if emp == "" || leaveType == "" {
			fail("employee and leave type are required")
			continue
		}
		from, err := parseDateCell(cell(row, ColFromDate))
		if err != nil {
			fail("invalid from date: %v", err)
			continue
		}
		to, err := parseDateCell(cell(row, ColToDate))
		if err != nil {
			fail("invalid to date: %v", err)
			continue
		}
		if to.Before(from) {
			fail("from date is after to date")
			continue
		}
		leaves, err := decimal.NewFromString(cell(row, ColLeaves))
		if err != nil || !leaves.IsPositive() {
			fail("leaves must be a positive number")
			continue
		}

		out = append(out, dto.LeaveRow{
			Row:          line,
			Employee:     emp,
			EmployeeName: cell(row, ColEmployeeName),
			LeaveType:    leaveType,
			FromDate:     workforce.DateKey(from),
			ToDate:       workforce.DateKey(to),
			Leaves:       leaves,
		})
	}
	return out, bad, nil
}

// parseDateCell acepta YYYY-MM-DD, DD-MM-YYYY, DD/MM/YYYY y seriales de Excel.
func parseDateCell(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q", v)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
