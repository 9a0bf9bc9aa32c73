package erpnext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa ERPClient.
var _ ports.ERPClient = (*Client)(nil)

const (
	resourcePath    = "/api/resource/"
	queryReportPath = "/api/method/frappe.desk.query_report.run"
	defaultPageSize = 500
	maxErrorBody    = 64 << 10
	excerptLen      = 300
)

// Config acceso a la API REST de ERPNext.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
	PageSize  int // filas por página al listar sin límite
}

// Client adaptador HTTP de ERPNext. Sin reintentos: cada fallo se propaga al llamador.
type Client struct {
	baseURL    string
	authHeader string
	pageSize   int
	httpClient *http.Client
}

// NewClient construye el cliente. Sin API key las llamadas van sin cabecera Authorization.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	c := &Client{
		baseURL:    cfg.BaseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
	if cfg.APIKey != "" {
		c.authHeader = fmt.Sprintf("token %s:%s", cfg.APIKey, cfg.APISecret)
	}
	return c
}

// ── Sobres de respuesta ───────────────────────────────────────────────────────

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type messageEnvelope struct {
	Message json.RawMessage `json:"message"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// List GET /api/resource/<Doctype> con fields, filters, paginación y orden.
// Con Limit 0 recorre todas las páginas de pageSize filas con limit_start.
func (c *Client) List(ctx context.Context, doctype string, q ports.ListQuery, out any) error {
	params := url.Values{}
	if len(q.Fields) > 0 {
		b, err := json.Marshal(q.Fields)
		if err != nil {
			return fmt.Errorf("ERPNext: serializar fields: %w", err)
		}
		params.Set("fields", string(b))
	}
	if len(q.Filters) > 0 {
		b, err := json.Marshal(q.Filters)
		if err != nil {
			return fmt.Errorf("ERPNext: serializar filters: %w", err)
		}
		params.Set("filters", string(b))
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}

	if q.Limit > 0 {
		params.Set("limit_page_length", strconv.Itoa(q.Limit))
		if q.Offset > 0 {
			params.Set("limit_start", strconv.Itoa(q.Offset))
		}
		return c.data(ctx, http.MethodGet, resourceURL(doctype, "")+"?"+params.Encode(), nil, out)
	}

	var all []json.RawMessage
	for start := q.Offset; ; start += c.pageSize {
		params.Set("limit_page_length", strconv.Itoa(c.pageSize))
		if start > 0 {
			params.Set("limit_start", strconv.Itoa(start))
		}
		var page []json.RawMessage
		if err := c.data(ctx, http.MethodGet, resourceURL(doctype, "")+"?"+params.Encode(), nil, &page); err != nil {
			return err
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			break
		}
	}
	if out == nil {
		return nil
	}
	if all == nil {
		all = []json.RawMessage{}
	}
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("ERPNext: unir páginas: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: deserializar data: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Get GET /api/resource/<Doctype>/<name>.
func (c *Client) Get(ctx context.Context, doctype, name string, out any) error {
	return c.data(ctx, http.MethodGet, resourceURL(doctype, name), nil, out)
}

// Create POST /api/resource/<Doctype>.
func (c *Client) Create(ctx context.Context, doctype string, doc any, out any) error {
	return c.data(ctx, http.MethodPost, resourceURL(doctype, ""), doc, out)
}

// Update PUT /api/resource/<Doctype>/<name>.
func (c *Client) Update(ctx context.Context, doctype, name string, doc any, out any) error {
	return c.data(ctx, http.MethodPut, resourceURL(doctype, name), doc, out)
}

// Delete DELETE /api/resource/<Doctype>/<name>.
func (c *Client) Delete(ctx context.Context, doctype, name string) error {
	_, err := c.do(ctx, http.MethodDelete, resourceURL(doctype, name), nil)
	return err
}

// RunQueryReport POST frappe.desk.query_report.run; la respuesta viene en {"message": {...}}.
func (c *Client) RunQueryReport(ctx context.Context, reportName string, filters map[string]any) (*ports.QueryReport, error) {
	if filters == nil {
		filters = map[string]any{}
	}
	raw, err := c.do(ctx, http.MethodPost, queryReportPath, map[string]any{
		"report_name": reportName,
		"filters":     filters,
	})
	if err != nil {
		return nil, err
	}
	var env messageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrUpstream, err)
	}
	var rep ports.QueryReport
	if len(env.Message) > 0 && string(env.Message) != "null" {
		if err := json.Unmarshal(env.Message, &rep); err != nil {
			return nil, fmt.Errorf("%w: deserializar reporte: %v", domain.ErrUpstream, err)
		}
	}
	return &rep, nil
}

func resourceURL(doctype, name string) string {
	u := resourcePath + url.PathEscape(doctype)
	if name != "" {
		u += "/" + url.PathEscape(name)
	}
	return u
}

func (c *Client) data(ctx context.Context, method, path string, body any, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrUpstream, err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: respuesta sin data", domain.ErrUpstream)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: deserializar data: %v", domain.ErrUpstream, err)
	}
	return nil
}

// do ejecuta la petición y traduce el status: 404 -> ErrNotFound, 401/403 -> ErrUpstreamAuth,
// cualquier otro no-2xx -> ErrUpstream con un extracto del cuerpo.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ERPNext: serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("ERPNext: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	// Las respuestas 2xx se leen completas; el tamaño lo acota la paginación de List.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
		}
		return raw, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrUpstreamAuth, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, excerpt(raw))
	}
}

func excerpt(b []byte) string {
	if len(b) > excerptLen {
		return string(b[:excerptLen]) + "…"
	}
	return string(b)
}
