package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/application/usecase"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

// recordingERP registra la última llamada y responde con datos fijos.
type recordingERP struct {
	doctype string
	name    string
	query   ports.ListQuery
	doc     any
	data    any
	err     error
}

func (r *recordingERP) fill(out any) error {
	if r.err != nil {
		return r.err
	}
	if out == nil || r.data == nil {
		return nil
	}
	b, _ := json.Marshal(r.data)
	return json.Unmarshal(b, out)
}

func (r *recordingERP) List(_ context.Context, doctype string, q ports.ListQuery, out any) error {
	r.doctype, r.query = doctype, q
	return r.fill(out)
}

func (r *recordingERP) Get(_ context.Context, doctype, name string, out any) error {
	r.doctype, r.name = doctype, name
	return r.fill(out)
}

func (r *recordingERP) Create(_ context.Context, doctype string, doc any, out any) error {
	r.doctype, r.doc = doctype, doc
	return r.fill(out)
}

func (r *recordingERP) Update(_ context.Context, doctype, name string, doc any, out any) error {
	r.doctype, r.name, r.doc = doctype, name, doc
	return r.fill(out)
}

func (r *recordingERP) Delete(_ context.Context, doctype, name string) error {
	r.doctype, r.name = doctype, name
	return r.err
}

func (r *recordingERP) RunQueryReport(context.Context, string, map[string]any) (*ports.QueryReport, error) {
	return &ports.QueryReport{}, r.err
}

func TestResourceList(t *testing.T) {
	erp := &recordingERP{data: []map[string]any{{"name": "HR-HL-2024", "holidays": []any{map[string]any{"holiday_date": "2024-01-01"}}}}}
	uc := usecase.NewResourceUseCase(erp)

	out, err := uc.List(context.Background(), "Holiday-Lists", dto.ResourceListRequest{
		Fields:  "name, holidays ,",
		Filters: `[["holiday_list_name","like","%2024%"]]`,
		OrderBy: "name desc",
	})
	require.NoError(t, err)
	assert.Equal(t, "Holiday List", erp.doctype)
	assert.Equal(t, []string{"name", "holidays"}, erp.query.Fields)
	assert.Equal(t, []ports.Filter{{Field: "holiday_list_name", Op: "like", Value: "%2024%"}}, erp.query.Filters)
	assert.Equal(t, 0, erp.query.Limit, "sin limit se traen todas las filas")
	require.Len(t, out.Data, 1)
	assert.Len(t, out.Data[0]["holidays"], 1, "la tabla hija pasa sin tocar")
}

func TestResourceList_Errores(t *testing.T) {
	uc := usecase.NewResourceUseCase(&recordingERP{})

	_, err := uc.List(context.Background(), "salary-slips", dto.ResourceListRequest{})
	assert.ErrorIs(t, err, domain.ErrUnknownResource)

	_, err = uc.List(context.Background(), "employees", dto.ResourceListRequest{Filters: "{status: Active}"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResourceList_CamposPorDefecto(t *testing.T) {
	erp := &recordingERP{}
	_, err := usecase.NewResourceUseCase(erp).List(context.Background(), "employees", dto.ResourceListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, erp.query.Fields)
}

func TestResourceCRUD(t *testing.T) {
	erp := &recordingERP{data: map[string]any{"name": "Ops - C"}}
	uc := usecase.NewResourceUseCase(erp)
	ctx := context.Background()

	created, err := uc.Create(ctx, "departments", map[string]any{"department_name": "Ops", "approvers": []any{}})
	require.NoError(t, err)
	assert.Equal(t, "Ops - C", created.Data["name"])
	assert.Equal(t, "Department", erp.doctype)

	_, err = uc.Update(ctx, "departments", "Ops - C", map[string]any{"name": "otro", "department_name": "Ops 2"})
	require.NoError(t, err)
	assert.Equal(t, "Ops - C", erp.name)
	assert.NotContains(t, erp.doc, "name")

	_, err = uc.Get(ctx, "departments", "Ops - C")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "departments", "Ops - C"))

	_, err = uc.Create(ctx, "departments", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	erp.err = domain.ErrNotFound
	_, err = uc.Get(ctx, "departments", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type captureWriter struct{ got ports.ReportTable }

func (w *captureWriter) WriteTable(t ports.ReportTable) ([]byte, error) {
	w.got = t
	return []byte("ok"), nil
}

func TestEmployeeExport(t *testing.T) {
	erp := &recordingERP{data: []map[string]any{{"name": "EMP-001", "employee_name": "Ana", "department": "Ops", "status": "Active", "date_of_joining": "2020-02-01"}}}
	w := &captureWriter{}

	_, err := usecase.NewEmployeeUseCase(erp, w).Export(context.Background(), "Active")
	require.NoError(t, err)
	assert.Equal(t, usecase.EmployeeExportHeaders, w.got.Headers)
	assert.Equal(t, []string{"EMP-001", "Ana", "Ops", "", "", "Active", "2020-02-01"}, w.got.Rows[0])
	assert.Equal(t, []ports.Filter{ports.Eq("status", "Active")}, erp.query.Filters)
}
