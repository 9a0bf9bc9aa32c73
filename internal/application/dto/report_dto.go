package dto

import (
	"fmt"
	"strings"
)

// QueryField filtro {FieldName, Value} del ejecutor de reportes.
type QueryField struct {
	FieldName string `json:"FieldName"`
	Value     any    `json:"Value"`
}

// Text devuelve el valor como texto recortado; nil queda vacío.
func (q QueryField) Text() string {
	if q.Value == nil {
		return ""
	}
	if s, ok := q.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(q.Value))
}

// ReportRequest cuerpo de POST /reports.
type ReportRequest struct {
	TemplateTable string       `json:"TemplateTable"`
	OutputColumns string       `json:"OutputColumns"`
	QueryFields   []QueryField `json:"QueryFields"`
	ResponseType  string       `json:"ResponseType"`
	TemplateType  string       `json:"TemplateType"`
}

// ReportResponse salida del ejecutor.
type ReportResponse struct {
	Status string           `json:"status"`
	Data   []map[string]any `json:"data"`
}

// MetaResponse campos públicos de una tabla.
type MetaResponse struct {
	Table  string   `json:"table"`
	Fields []string `json:"fields"`
}
