package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/entity"
)

// Resources slugs expuestos por el proxy y su doctype de ERPNext.
var Resources = map[string]string{
	"employees":         entity.DoctypeEmployee,
	"departments":       entity.DoctypeDepartment,
	"designations":      entity.DoctypeDesignation,
	"holiday-lists":     entity.DoctypeHolidayList,
	"shift-assignments": entity.DoctypeShiftAssignment,
	"shift-types":       entity.DoctypeShiftType,
	"leave-allocations": entity.DoctypeLeaveAllocation,
	"attendance":        entity.DoctypeAttendance,
	"checkins":          entity.DoctypeEmployeeCheckin,
}

// ResourceUseCase CRUD de doctypes de ERPNext detrás de una lista blanca.
// Las tablas hijas (approvers, holidays) pasan sin tocarse dentro del documento.
type ResourceUseCase struct {
	erp ports.ERPClient
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(erp ports.ERPClient) *ResourceUseCase {
	return &ResourceUseCase{erp: erp}
}

// Doctype resuelve el slug; desconocido devuelve ErrUnknownResource.
func Doctype(slug string) (string, error) {
	dt, ok := Resources[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownResource, slug)
	}
	return dt, nil
}

// List lista documentos con fields (por defecto "name"), filters JSON y paginación.
func (uc *ResourceUseCase) List(ctx context.Context, slug string, in dto.ResourceListRequest) (*dto.ResourceListResponse, error) {
	doctype, err := Doctype(slug)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	q := ports.ListQuery{Fields: splitFields(in.Fields), Limit: in.Limit, Offset: in.Offset, OrderBy: strings.TrimSpace(in.OrderBy)}
	if f := strings.TrimSpace(in.Filters); f != "" {
		if err := json.Unmarshal([]byte(f), &q.Filters); err != nil {
			return nil, fmt.Errorf("%w: filters must be a JSON array of [field, op, value]: %v", domain.ErrInvalidInput, err)
		}
	}

	rows := []map[string]any{}
	if err := uc.erp.List(ctx, doctype, q, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return &dto.ResourceListResponse{
		Success: true,
		Data:    rows,
		Page:    dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(rows)},
	}, nil
}

// Get obtiene un documento por name.
func (uc *ResourceUseCase) Get(ctx context.Context, slug, name string) (*dto.ResourceResponse, error) {
	doctype, err := Doctype(slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	var doc map[string]any
	if err := uc.erp.Get(ctx, doctype, name, &doc); err != nil {
		return nil, err
	}
	return &dto.ResourceResponse{Success: true, Data: doc}, nil
}

// Create crea un documento.
func (uc *ResourceUseCase) Create(ctx context.Context, slug string, doc map[string]any) (*dto.ResourceResponse, error) {
	doctype, err := Doctype(slug)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	var out map[string]any
	if err := uc.erp.Create(ctx, doctype, doc, &out); err != nil {
		return nil, err
	}
	return &dto.ResourceResponse{Success: true, Data: out}, nil
}

// Update modifica un documento. name y doctype del cuerpo se ignoran.
func (uc *ResourceUseCase) Update(ctx context.Context, slug, name string, doc map[string]any) (*dto.ResourceResponse, error) {
	doctype, err := Doctype(slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" || len(doc) == 0 {
		return nil, fmt.Errorf("%w: name and a non-empty document are required", domain.ErrInvalidInput)
	}
	delete(doc, "name")
	delete(doc, "doctype")
	var out map[string]any
	if err := uc.erp.Update(ctx, doctype, name, doc, &out); err != nil {
		return nil, err
	}
	return &dto.ResourceResponse{Success: true, Data: out}, nil
}

// Delete borra un documento.
func (uc *ResourceUseCase) Delete(ctx context.Context, slug, name string) error {
	doctype, err := Doctype(slug)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return uc.erp.Delete(ctx, doctype, name)
}

func splitFields(list string) []string {
	var out []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{"name"}
	}
	return out
}
