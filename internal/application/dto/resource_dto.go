package dto

// ResourceListRequest parámetros de listado del proxy de recursos.
type ResourceListRequest struct {
	PageRequest
	Fields  string `query:"fields"`
	Filters string `query:"filters"` // JSON [[campo, op, valor], ...]
	OrderBy string `query:"order_by"`
}

// ResourceListResponse salida de listado.
type ResourceListResponse struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
	Page    PageResponse     `json:"page"`
}

// ResourceResponse salida de un documento.
type ResourceResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}
