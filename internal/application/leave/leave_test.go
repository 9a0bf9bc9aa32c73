package leave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

// memERP guarda asignaciones en memoria y aplica los filtros que usa upsert.
type memERP struct {
	mu     sync.Mutex
	allocs map[string]map[string]any
	seq    int
	emps   []map[string]any
	failOn string // employee cuya creación falla
}

func newMemERP() *memERP { return &memERP{allocs: map[string]map[string]any{}} }

func filterValue(fs []ports.Filter, field string) any {
	for _, f := range fs {
		if f.Field == field {
			return f.Value
		}
	}
	return nil
}

func (m *memERP) List(_ context.Context, doctype string, q ports.ListQuery, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []map[string]any
	switch doctype {
	case entity.DoctypeEmployee:
		rows = m.emps
	case entity.DoctypeLeaveAllocation:
		emp := filterValue(q.Filters, "employee")
		lt := filterValue(q.Filters, "leave_type")
		span, _ := filterValue(q.Filters, "from_date").([]string)
		for _, a := range m.allocs {
			from := a["from_date"].(string)
			if a["employee"] == emp && a["leave_type"] == lt && from >= span[0] && from <= span[1] {
				rows = append(rows, a)
			}
		}
	}
	b, _ := json.Marshal(rows)
	return json.Unmarshal(b, out)
}

func (m *memERP) Get(context.Context, string, string, any) error { return domain.ErrNotFound }

func (m *memERP) Create(_ context.Context, _ string, doc any, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := doc.(map[string]any)
	if d["employee"] == m.failOn {
		return fmt.Errorf("%w: HTTP 417: Employee not found", domain.ErrUpstream)
	}
	m.seq++
	name := fmt.Sprintf("HR-LAL-%03d", m.seq)
	cp := map[string]any{"name": name}
	for k, v := range d {
		cp[k] = v
	}
	m.allocs[name] = cp
	return nil
}

func (m *memERP) Update(_ context.Context, _ string, name string, doc any, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range doc.(map[string]any) {
		m.allocs[name][k] = v
	}
	return nil
}

func (m *memERP) Delete(context.Context, string, string) error { return nil }

func (m *memERP) RunQueryReport(context.Context, string, map[string]any) (*ports.QueryReport, error) {
	return &ports.QueryReport{}, nil
}

// rowsReader devuelve filas fijas sin tocar el archivo.
type rowsReader struct{ rows [][]string }

func (r rowsReader) ReadRows(string, io.Reader) ([][]string, error) { return r.rows, nil }

// tableWriter captura la tabla escrita.
type tableWriter struct{ got ports.ReportTable }

func (w *tableWriter) WriteTable(t ports.ReportTable) ([]byte, error) {
	w.got = t
	return []byte("xlsx"), nil
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Carga de permisos 2024"},
		{},
		{" employee  id ", "Employee Name", "LEAVE TYPE", "From Date", "To Date", "Leaves"},
		{"EMP-001", "Ana", "Casual Leave", "2024-01-05", "31-01-2024", "1.5"},
		{"", "", "", "", "", ""},
		{"EMP-002", "Luis", "Casual Leave", "45292", "05/01/2024", "2"},
		{"EMP-003", "Eva", "Casual Leave", "2024-02-10", "2024-02-01", "1"},
		{"EMP-004", "Leo", "Casual Leave", "2024-02-10", "2024-02-11", "-1"},
		{"EMP-005", "Mar", "", "2024-02-10", "2024-02-11", "1"},
	}

	out, bad, err := ParseRows(rows)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 4, out[0].Row)
	assert.Equal(t, "2024-01-31", out[0].ToDate)
	assert.True(t, decimal.RequireFromString("1.5").Equal(out[0].Leaves))
	assert.Equal(t, "2024-01-01", out[1].FromDate, "serial 45292 es 2024-01-01")
	assert.Equal(t, "2024-01-05", out[1].ToDate)

	require.Len(t, bad, 3)
	assert.Equal(t, "EMP-003", bad[0].Employee)
	assert.Equal(t, 7, bad[0].Row)
	assert.Contains(t, bad[1].Message, "positive")
}

func TestParseRows_SinEncabezado(t *testing.T) {
	_, _, err := ParseRows([][]string{{"Nombre", "Días"}, {"Ana", "2"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = ParseRows([][]string{{"Employee ID", "Leave Type"}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "From Date")
}

func TestUpload_SumaEnElMismoMes(t *testing.T) {
	erp := newMemERP()
	erp.failOn = "EMP-009"
	reader := rowsReader{rows: [][]string{
		TemplateHeaders,
		{"EMP-001", "Ana", "Casual Leave", "2024-01-05", "2024-01-31", "1.5"},
		{"EMP-001", "Ana", "Casual Leave", "2024-01-20", "2024-01-31", "1"},
		{"EMP-001", "Ana", "Casual Leave", "2024-01-25", "2024-01-31", "0.5"},
		{"EMP-001", "Ana", "Casual Leave", "2024-02-01", "2024-02-28", "2"},
		{"EMP-009", "X", "Casual Leave", "2024-02-01", "2024-02-28", "2"},
		{"EMP-010", "Y", "Casual Leave", "fecha", "2024-02-28", "2"},
	}}
	uc := NewUseCase(erp, reader, &tableWriter{})

	res, err := uc.Upload(context.Background(), "carga.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created, "uno por mes")
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, 2, res.Failed)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "EMP-009", res.Errors[0].Employee)
	assert.Equal(t, "EMP-010", res.Errors[1].Employee)

	require.Len(t, erp.allocs, 2)
	var jan map[string]any
	for _, a := range erp.allocs {
		if strings.HasPrefix(a["from_date"].(string), "2024-01") {
			jan = a
		}
	}
	require.NotNil(t, jan)
	assert.InDelta(t, 3.0, jan["new_leaves_allocated"], 1e-9)
	assert.Zero(t, uc.locks.size(), "los candados se liberan")
}

func TestTemplate(t *testing.T) {
	erp := newMemERP()
	erp.emps = []map[string]any{{"name": "EMP-001", "employee_name": "Ana"}}
	w := &tableWriter{}
	uc := NewUseCase(erp, rowsReader{}, w)

	b, err := uc.Template(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), b)
	assert.Equal(t, TemplateHeaders, w.got.Headers)
	require.Len(t, w.got.Rows, 1)
	assert.Equal(t, "EMP-001", w.got.Rows[0][0])
}

func TestKeyLock_Serializa(t *testing.T) {
	k := newKeyLock()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("EMP-001|Casual|2024-01")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, k.size())
}
