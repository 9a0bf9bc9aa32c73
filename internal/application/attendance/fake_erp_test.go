package attendance_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

// fakeERP devuelve filas fijas por doctype y registra las consultas recibidas.
type fakeERP struct {
	mu      sync.Mutex
	rows    map[string]any
	queries map[string]ports.ListQuery
	failOn  string
	report  *ports.QueryReport
}

func newFakeERP() *fakeERP {
	return &fakeERP{rows: map[string]any{}, queries: map[string]ports.ListQuery{}}
}

func (f *fakeERP) List(_ context.Context, doctype string, q ports.ListQuery, out any) error {
	f.mu.Lock()
	f.queries[doctype] = q
	f.mu.Unlock()
	if doctype == f.failOn {
		return domain.ErrUpstream
	}
	rows, ok := f.rows[doctype]
	if !ok {
		rows = []any{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeERP) Get(context.Context, string, string, any) error { return domain.ErrNotFound }

func (f *fakeERP) Create(context.Context, string, any, any) error { return nil }

func (f *fakeERP) Update(context.Context, string, string, any, any) error { return nil }

func (f *fakeERP) Delete(context.Context, string, string) error { return nil }

func (f *fakeERP) RunQueryReport(_ context.Context, _ string, _ map[string]any) (*ports.QueryReport, error) {
	if f.report == nil {
		return &ports.QueryReport{}, nil
	}
	return f.report, nil
}
