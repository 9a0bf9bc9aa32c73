// Package attendance arma los reportes de asistencia: trae filas crudas de ERPNext en
// paralelo y las pasa por las derivaciones de workforce.
package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/workforce"
)

// MaxRangeDays rango máximo de fechas aceptado por los reportes.
const MaxRangeDays = 366

// Service reportes de asistencia sobre ERPNext.
type Service struct {
	erp           ports.ERPClient
	cutoffMinutes int
	now           func() time.Time
}

// NewService construye el servicio. defaultCutoff es HH:MM (HEADCOUNT_CUTOFF).
func NewService(erp ports.ERPClient, defaultCutoff string) (*Service, error) {
	cutoff, err := workforce.ParseClock(defaultCutoff)
	if err != nil {
		return nil, fmt.Errorf("attendance: corte de ocupación: %w", err)
	}
	return &Service{erp: erp, cutoffMinutes: cutoff, now: time.Now}, nil
}

// parseRange valida YYYY-MM-DD, from <= to y el tope de MaxRangeDays.
func parseRange(from, to string) (time.Time, time.Time, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to are required (YYYY-MM-DD)", domain.ErrInvalidInput)
	}
	f, err := time.Parse(workforce.DateLayout, strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date %q", domain.ErrInvalidInput, from)
	}
	t, err := time.Parse(workforce.DateLayout, strings.TrimSpace(to))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date %q", domain.ErrInvalidInput, to)
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must not be after to", domain.ErrInvalidInput)
	}
	if workforce.DaysBetween(f, t) > MaxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range exceeds %d days", domain.ErrInvalidInput, MaxRangeDays)
	}
	return f, t, nil
}
