package erpnext_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/erpnext"
)

func newClient(t *testing.T, h http.HandlerFunc) *erpnext.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return erpnext.NewClient(erpnext.Config{BaseURL: srv.URL, APIKey: "k", APISecret: "s", Timeout: 5 * time.Second})
}

func TestList_ConstruyeQueryYDecodifica(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/resource/Employee Checkin", r.URL.Path)
		assert.Equal(t, "token k:s", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, `["employee","time"]`, q.Get("fields"))
		assert.Equal(t, `[["time","between",["2024-01-01","2024-01-02"]],["employee","=","EMP-001"]]`, q.Get("filters"))
		assert.Equal(t, "500", q.Get("limit_page_length"))
		assert.Empty(t, q.Get("limit_start"))
		assert.Equal(t, "time asc", q.Get("order_by"))
		_, _ = io.WriteString(w, `{"data":[{"name":"CHK-1","employee":"EMP-001","time":"2024-01-01 09:00:00"}]}`)
	})

	var rows []entity.EmployeeCheckin
	err := c.List(context.Background(), entity.DoctypeEmployeeCheckin, ports.ListQuery{
		Fields: []string{"employee", "time"},
		Filters: []ports.Filter{
			{Field: "time", Op: "between", Value: []string{"2024-01-01", "2024-01-02"}},
			ports.Eq("employee", "EMP-001"),
		},
		OrderBy: "time asc",
	}, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP-001", rows[0].Employee)
}

func TestList_SinLimiteRecorrePaginas(t *testing.T) {
	const total = 5
	var starts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("limit_page_length"))
		starts = append(starts, q.Get("limit_start"))
		start, _ := strconv.Atoi(q.Get("limit_start"))
		var page []map[string]string
		for i := start; i < total && i < start+2; i++ {
			page = append(page, map[string]string{"name": fmt.Sprintf("EMP-%03d", i)})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": page})
	}))
	t.Cleanup(srv.Close)
	c := erpnext.NewClient(erpnext.Config{BaseURL: srv.URL, PageSize: 2})

	var rows []entity.Employee
	require.NoError(t, c.List(context.Background(), entity.DoctypeEmployee, ports.ListQuery{}, &rows))
	require.Len(t, rows, total)
	assert.Equal(t, "EMP-004", rows[4].ID)
	assert.Equal(t, []string{"", "2", "4"}, starts)
}

func TestList_LimiteExplicitoUnaPeticion(t *testing.T) {
	calls := 0
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		assert.Equal(t, "20", q.Get("limit_page_length"))
		assert.Equal(t, "40", q.Get("limit_start"))
		_, _ = io.WriteString(w, `{"data":[{"name":"EMP-041"}]}`)
	})

	var rows []entity.Employee
	require.NoError(t, c.List(context.Background(), entity.DoctypeEmployee, ports.ListQuery{Limit: 20, Offset: 40}, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, calls)
}

func TestGet_RespuestaGrandeNoSeTrunca(t *testing.T) {
	big := strings.Repeat("x", 10<<20)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"name": "EMP-001", "notes": big}})
	})

	var doc map[string]string
	require.NoError(t, c.Get(context.Background(), entity.DoctypeEmployee, "EMP-001", &doc))
	assert.Len(t, doc["notes"], len(big))
}

func TestGet_NombreConEspaciosSeEscapaUnaVez(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resource/Department/Human%20Resources%20-%20AC", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"data":{"name":"Human Resources - AC"}}`)
	})

	var doc map[string]any
	require.NoError(t, c.Get(context.Background(), entity.DoctypeDepartment, "Human Resources - AC", &doc))
	assert.Equal(t, "Human Resources - AC", doc["name"])
}

func TestCreateYUpdate_EnvianJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/resource/Department", r.URL.Path)
			_, _ = io.WriteString(w, `{"data":{"name":"Ops - C","department_name":"Ops"}}`)
		case http.MethodPut:
			assert.Equal(t, "/api/resource/Department/Ops - C", r.URL.Path)
			_, _ = io.WriteString(w, `{"data":{"name":"Ops - C","department_name":"Ops 2"}}`)
		}
	})

	var created map[string]any
	require.NoError(t, c.Create(context.Background(), "Department", map[string]any{"department_name": "Ops"}, &created))
	assert.Equal(t, "Ops - C", created["name"])

	var updated map[string]any
	require.NoError(t, c.Update(context.Background(), "Department", "Ops - C", map[string]any{"department_name": "Ops 2"}, &updated))
	assert.Equal(t, "Ops 2", updated["department_name"])
}

func TestErrores_TraduceStatus(t *testing.T) {
	status := http.StatusNotFound
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"exc_type":"Boom"}`)
	})

	var out map[string]any
	err := c.Get(context.Background(), "Employee", "EMP-404", &out)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	status = http.StatusForbidden
	err = c.Delete(context.Background(), "Employee", "EMP-1")
	assert.ErrorIs(t, err, domain.ErrUpstreamAuth)

	status = http.StatusInternalServerError
	err = c.Get(context.Background(), "Employee", "EMP-1", &out)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "Boom")
}

func TestRunQueryReport(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/method/frappe.desk.query_report.run", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Monthly Attendance Sheet", body["report_name"])
		_, _ = io.WriteString(w, `{"message":{"columns":[{"label":"Employee"}],"result":[["EMP-001"]]}}`)
	})

	rep, err := c.RunQueryReport(context.Background(), "Monthly Attendance Sheet", map[string]any{"month": "01"})
	require.NoError(t, err)
	assert.Len(t, rep.Columns, 1)
	assert.Len(t, rep.Result, 1)
}

func TestFilter_JSON(t *testing.T) {
	var f ports.Filter
	require.NoError(t, json.Unmarshal([]byte(`["Employee","status","=","Active"]`), &f))
	assert.Equal(t, ports.Filter{Field: "status", Op: "=", Value: "Active"}, f)

	assert.Error(t, json.Unmarshal([]byte(`["status","="]`), &f))
}
