// Package workforce contiene las derivaciones de los reportes de asistencia:
// rachas de ausencia, horas extra, ocupación por departamento y resumen de marcajes.
// Son funciones puras sobre filas ya obtenidas de ERPNext.
package workforce

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout formato de fecha de ERPNext.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate interpreta YYYY-MM-DD (ignora una parte horaria si viene) como fecha UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// ParseTimestamp interpreta el campo time de Employee Checkin. Sin zona, se asume UTC
// para que la fecha calendario coincida con la registrada en ERPNext.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp inválido %q", s)
}

// DateKey clave de fecha calendario.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey clave de mes calendario (YYYY-MM).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MinuteOfDay minutos transcurridos desde la medianoche.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock convierte "H:MM", "HH:MM:SS" o "HH:MM:SS.ffffff" en minutos del día.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("minuto inválido %q", s)
	}
	return h*60 + m, nil
}

// DaysBetween número de días calendario del rango inclusivo.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
