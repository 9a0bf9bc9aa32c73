package ports

import (
	"context"
	"encoding/json"
	"errors"
)

var errFilterShape = errors.New("filtro inválido: se espera [campo, operador, valor]")

// Filter condición de ERPNext; se serializa como la tripleta [campo, operador, valor].
type Filter struct {
	Field string
	Op    string
	Value any
}

// MarshalJSON serializa como arreglo.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.Field, f.Op, f.Value})
}

// UnmarshalJSON acepta [campo, op, valor] o [doctype, campo, op, valor].
func (f *Filter) UnmarshalJSON(b []byte) error {
	var parts []any
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) == 4 {
		parts = parts[1:]
	}
	if len(parts) != 3 {
		return errFilterShape
	}
	field, ok1 := parts[0].(string)
	op, ok2 := parts[1].(string)
	if !ok1 || !ok2 {
		return errFilterShape
	}
	f.Field, f.Op, f.Value = field, op, parts[2]
	return nil
}

// Eq atajo para la condición de igualdad.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: "=", Value: value} }

// ListQuery parámetros de listado. Limit 0 trae todas las filas.
type ListQuery struct {
	Fields  []string
	Filters []Filter
	Limit   int
	Offset  int
	OrderBy string
}

// QueryReport resultado de frappe.desk.query_report.run.
type QueryReport struct {
	Columns []any `json:"columns"`
	Result  []any `json:"result"`
}

// ERPClient puerto de salida hacia la API REST de ERPNext. Los métodos decodifican el
// sobre {"data": ...} en out (puntero), igual que json.Unmarshal.
type ERPClient interface {
	List(ctx context.Context, doctype string, q ListQuery, out any) error
	Get(ctx context.Context, doctype, name string, out any) error
	Create(ctx context.Context, doctype string, doc any, out any) error
	Update(ctx context.Context, doctype, name string, doc any, out any) error
	Delete(ctx context.Context, doctype, name string) error
	RunQueryReport(ctx context.Context, reportName string, filters map[string]any) (*QueryReport, error)
}
