package workforce

import (
	"sort"
	"time"
)

// Punch marcaje ya interpretado.
type Punch struct {
	Employee     string
	EmployeeName string
	Time         time.Time
	LogType      string
}

// DailyPunch resumen de un empleado en un día: primer marcaje como entrada, último como salida.
type DailyPunch struct {
	Employee      string
	EmployeeName  string
	Date          string
	FirstIn       time.Time
	LastOut       time.Time
	Punches       int
	WorkedMinutes int
}

// GroupByDate agrupa los marcajes por empleado y DateKey, ordenados por hora.
func GroupByDate(punches []Punch) map[string]map[string][]time.Time {
	out := map[string]map[string][]time.Time{}
	for _, p := range punches {
		days, ok := out[p.Employee]
		if !ok {
			days = map[string][]time.Time{}
			out[p.Employee] = days
		}
		key := DateKey(p.Time)
		days[key] = append(days[key], p.Time)
	}
	for _, days := range out {
		for _, ts := range days {
			sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
		}
	}
	return out
}

// SummarizePunches produce una fila por empleado y día, ordenadas por empleado y fecha.
func SummarizePunches(punches []Punch) []DailyPunch {
	names := map[string]string{}
	for _, p := range punches {
		if p.EmployeeName != "" {
			names[p.Employee] = p.EmployeeName
		}
	}

	out := make([]DailyPunch, 0)
	for emp, days := range GroupByDate(punches) {
		for date, ts := range days {
			first, last := ts[0], ts[len(ts)-1]
			out = append(out, DailyPunch{
				Employee:      emp,
				EmployeeName:  names[emp],
				Date:          date,
				FirstIn:       first,
				LastOut:       last,
				Punches:       len(ts),
				WorkedMinutes: int(last.Sub(first).Minutes()),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Employee != out[j].Employee {
			return out[i].Employee < out[j].Employee
		}
		return out[i].Date < out[j].Date
	})
	return out
}
