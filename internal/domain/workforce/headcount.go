package workforce

import (
	"math"
	"sort"
	"time"

	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

// Filas especiales del resumen de ocupación.
const (
	TotalRow             = "TOTAL"
	UnassignedDepartment = "Unassigned"
)

// HeadcountInput entrada de SummarizeHeadcount para un único día.
type HeadcountInput struct {
	CutoffMinutes int
	Employees     []EmployeeRef
	Punches       map[string][]time.Time // marcajes del día por empleado
	Statuses      map[string]string      // estado de Attendance del día por empleado
}

// HeadcountRow conteo por departamento.
type HeadcountRow struct {
	Department   string
	Total        int
	Present      int
	HalfDay      int
	Absent       int
	OnLeave      int
	NotMarked    int
	OccupancyPct int
}

func (r *HeadcountRow) add(o HeadcountRow) {
	r.Total += o.Total
	r.Present += o.Present
	r.HalfDay += o.HalfDay
	r.Absent += o.Absent
	r.OnLeave += o.OnLeave
	r.NotMarked += o.NotMarked
}

func (r *HeadcountRow) computeOccupancy() {
	if r.Total == 0 {
		r.OccupancyPct = 0
		return
	}
	r.OccupancyPct = int(math.Round(float64(r.Present+r.HalfDay) / float64(r.Total) * 100))
}

// SummarizeHeadcount clasifica a cada empleado: marcaje antes del corte -> presente; si no,
// según el estado de Attendance; sin registro -> no marcado. Devuelve los departamentos
// ordenados por nombre y una fila TOTAL al final.
func SummarizeHeadcount(in HeadcountInput) []HeadcountRow {
	byDept := map[string]*HeadcountRow{}
	for _, emp := range in.Employees {
		dept := emp.Department
		if dept == "" {
			dept = UnassignedDepartment
		}
		row, ok := byDept[dept]
		if !ok {
			row = &HeadcountRow{Department: dept}
			byDept[dept] = row
		}
		row.Total++

		if punchedBefore(in.Punches[emp.ID], in.CutoffMinutes) {
			row.Present++
			continue
		}
		switch in.Statuses[emp.ID] {
		case entity.AttendancePresent, entity.AttendanceWorkFromHome:
			row.Present++
		case entity.AttendanceHalfDay:
			row.HalfDay++
		case entity.AttendanceAbsent:
			row.Absent++
		case entity.AttendanceOnLeave:
			row.OnLeave++
		default:
			row.NotMarked++
		}
	}

	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)

	out := make([]HeadcountRow, 0, len(depts)+1)
	total := HeadcountRow{Department: TotalRow}
	for _, d := range depts {
		row := byDept[d]
		row.computeOccupancy()
		total.add(*row)
		out = append(out, *row)
	}
	total.computeOccupancy()
	return append(out, total)
}

func punchedBefore(punches []time.Time, cutoff int) bool {
	for _, p := range punches {
		if MinuteOfDay(p) < cutoff {
			return true
		}
	}
	return false
}
