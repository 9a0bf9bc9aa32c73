package workforce

import (
	"time"

	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

// EmployeeRef datos mínimos del empleado que usan las derivaciones.
type EmployeeRef struct {
	ID           string
	Name         string
	Department   string
	DefaultShift string
}

// AbsenceInput entrada de DetectAbsenceStreaks. Los mapas van indexados por empleado y DateKey.
type AbsenceInput struct {
	From, To  time.Time
	Threshold int
	Employees []EmployeeRef
	Statuses  map[string]map[string]string
	Punched   map[string]map[string]bool
}

// AbsenceStreak racha de ausencia consecutiva.
// To es el último día ausente real; Days no cuenta los domingos intermedios.
type AbsenceStreak struct {
	Employee     string
	EmployeeName string
	Department   string
	From         time.Time
	To           time.Time
	Days         int
}

// DetectAbsenceStreaks recorre el rango día a día por empleado.
//   - Domingo: transparente, ni extiende ni corta la racha.
//   - Con marcaje, o con estado distinto de Absent: cierra la racha.
//   - Absent explícito, o sin registro y sin marcaje: extiende la racha.
//
// Se emite una fila por racha con Days >= Threshold (mínimo 1).
func DetectAbsenceStreaks(in AbsenceInput) []AbsenceStreak {
	threshold := in.Threshold
	if threshold < 1 {
		threshold = 1
	}

	out := make([]AbsenceStreak, 0)
	for _, emp := range in.Employees {
		var start, last time.Time
		days := 0
		flush := func() {
			if days >= threshold {
				out = append(out, AbsenceStreak{
					Employee:     emp.ID,
					EmployeeName: emp.Name,
					Department:   emp.Department,
					From:         start,
					To:           last,
					Days:         days,
				})
			}
			days = 0
		}

		statuses := in.Statuses[emp.ID]
		punched := in.Punched[emp.ID]
		for d := in.From; !d.After(in.To); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == time.Sunday {
				continue
			}
			key := DateKey(d)
			if punched[key] {
				flush()
				continue
			}
			if status := statuses[key]; status != "" && status != entity.AttendanceAbsent {
				flush()
				continue
			}
			if days == 0 {
				start = d
			}
			last = d
			days++
		}
		flush()
	}
	return out
}
