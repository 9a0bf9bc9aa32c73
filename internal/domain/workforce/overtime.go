package workforce

import (
	"math"
	"time"
)

const minutesPerDay = 24 * 60

// ShiftWindow horario de un turno en minutos del día.
type ShiftWindow struct {
	StartMinutes int
	EndMinutes   int
}

// ExpectedMinutes duración del turno; un fin anterior al inicio es un turno nocturno.
func (w ShiftWindow) ExpectedMinutes() int {
	d := w.EndMinutes - w.StartMinutes
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// ShiftSpan vigencia de una asignación de turno. To cero significa sin fecha de fin.
type ShiftSpan struct {
	ShiftType string
	From      time.Time
	To        time.Time
}

// Covers indica si la fecha cae dentro de la vigencia (inclusiva).
func (s ShiftSpan) Covers(d time.Time) bool {
	if d.Before(s.From) {
		return false
	}
	return s.To.IsZero() || !d.After(s.To)
}

// OvertimeInput entrada de ComputeOvertime. Punches: empleado -> DateKey -> marcajes.
type OvertimeInput struct {
	From, To    time.Time
	Monthwise   bool
	Employees   []EmployeeRef
	Assignments map[string][]ShiftSpan
	Shifts      map[string]ShiftWindow
	Punches     map[string]map[string][]time.Time
}

// OvertimeRow acumulado por empleado (y por mes si Monthwise).
type OvertimeRow struct {
	Employee        string
	EmployeeName    string
	Department      string
	Month           string // YYYY-MM; vacío si no es mensual
	DaysCounted     int
	WorkedMinutes   int
	ExpectedMinutes int
	OvertimeMinutes int
	CompOffDays     int
}

// ResolveShift elige la asignación vigente con inicio más reciente; si no hay o su turno no
// está definido, usa el turno por defecto del empleado.
func ResolveShift(emp EmployeeRef, spans []ShiftSpan, shifts map[string]ShiftWindow, d time.Time) (ShiftWindow, bool) {
	var best *ShiftSpan
	for i := range spans {
		s := &spans[i]
		if !s.Covers(d) {
			continue
		}
		if _, ok := shifts[s.ShiftType]; !ok {
			continue
		}
		if best == nil || s.From.After(best.From) {
			best = s
		}
	}
	if best != nil {
		return shifts[best.ShiftType], true
	}
	if emp.DefaultShift != "" {
		w, ok := shifts[emp.DefaultShift]
		return w, ok
	}
	return ShiftWindow{}, false
}

// ComputeOvertime calcula por día: esperado = duración del turno, trabajado = último marcaje
// menos el primero, extra = max(0, trabajado - esperado). Días sin turno o sin marcajes se omiten.
// Compensatorio (solo no mensual) = floor(extra / promedio esperado por día contado).
func ComputeOvertime(in OvertimeInput) []OvertimeRow {
	out := make([]OvertimeRow, 0)
	for _, emp := range in.Employees {
		buckets := map[string]*OvertimeRow{}
		var order []string

		days := in.Punches[emp.ID]
		for d := in.From; !d.After(in.To); d = d.AddDate(0, 0, 1) {
			punches := days[DateKey(d)]
			if len(punches) == 0 {
				continue
			}
			shift, ok := ResolveShift(emp, in.Assignments[emp.ID], in.Shifts, d)
			if !ok {
				continue
			}

			first, last := punches[0], punches[0]
			for _, p := range punches[1:] {
				if p.Before(first) {
					first = p
				}
				if p.After(last) {
					last = p
				}
			}
			worked := int(last.Sub(first).Minutes())
			expected := shift.ExpectedMinutes()
			extra := worked - expected
			if extra < 0 {
				extra = 0
			}

			key := ""
			if in.Monthwise {
				key = MonthKey(d)
			}
			row, ok := buckets[key]
			if !ok {
				row = &OvertimeRow{
					Employee:     emp.ID,
					EmployeeName: emp.Name,
					Department:   emp.Department,
					Month:        key,
				}
				buckets[key] = row
				order = append(order, key)
			}
			row.DaysCounted++
			row.WorkedMinutes += worked
			row.ExpectedMinutes += expected
			row.OvertimeMinutes += extra
		}

		for _, key := range order {
			row := buckets[key]
			if !in.Monthwise && row.DaysCounted > 0 && row.ExpectedMinutes > 0 {
				avg := float64(row.ExpectedMinutes) / float64(row.DaysCounted)
				row.CompOffDays = int(math.Floor(float64(row.OvertimeMinutes) / avg))
			}
			out = append(out, *row)
		}
	}
	return out
}
