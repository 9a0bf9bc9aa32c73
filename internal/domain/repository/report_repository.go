package repository

import "context"

// FieldMatch filtro de subcadena sin distinción de mayúsculas sobre un campo.
// Value es literal: los adaptadores lo escapan antes de construir la consulta.
type FieldMatch struct {
	Field string
	Value string
}

// ReportQuery consulta genérica del ejecutor de reportes.
type ReportQuery struct {
	Table   string   // nombre físico (colección o tabla)
	Columns []string // proyección de inclusión; _id siempre se devuelve
	Filters []FieldMatch
}

// ReportRepository ejecuta consultas de solo lectura para el ejecutor genérico de reportes.
type ReportRepository interface {
	Find(ctx context.Context, q ReportQuery) ([]map[string]any, error)
}
