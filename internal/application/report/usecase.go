package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/repository"
)

const statusSuccess = "success"

// ReportUseCase ejecutor genérico: tabla + proyección + filtros de subcadena.
type ReportUseCase struct {
	repo            repository.ReportRepository
	emptyAsNotFound bool
}

// NewReportUseCase construye el ejecutor. emptyAsNotFound=true responde ErrNoData con cero filas.
func NewReportUseCase(repo repository.ReportRepository, emptyAsNotFound bool) *ReportUseCase {
	return &ReportUseCase{repo: repo, emptyAsNotFound: emptyAsNotFound}
}

// RunReport ejecuta la consulta. ResponseType y TemplateType no cambian la forma de la respuesta.
func (uc *ReportUseCase) RunReport(ctx context.Context, in dto.ReportRequest) (*dto.ReportResponse, error) {
	table, err := ResolveTable(in.TemplateTable)
	if err != nil {
		return nil, err
	}

	q := repository.ReportQuery{
		Table:   table.Name,
		Columns: ParseColumns(table, in.OutputColumns),
	}
	for _, f := range in.QueryFields {
		field := strings.TrimSpace(f.FieldName)
		value := f.Text()
		if field == "" || value == "" {
			continue
		}
		if table.isHidden(field) {
			return nil, fmt.Errorf("%w: field %q is not filterable", domain.ErrInvalidInput, field)
		}
		canonical, ok := table.field(field)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
		}
		q.Filters = append(q.Filters, repository.FieldMatch{Field: canonical, Value: value})
	}

	rows, err := uc.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", table.Name, err)
	}
	if len(rows) == 0 {
		if uc.emptyAsNotFound {
			return nil, domain.ErrNoData
		}
		rows = []map[string]any{}
	}
	return &dto.ReportResponse{Status: statusSuccess, Data: rows}, nil
}

// Meta lista los campos públicos de la tabla.
func (uc *ReportUseCase) Meta(tableName string) (*dto.MetaResponse, error) {
	if strings.TrimSpace(tableName) == "" {
		return nil, fmt.Errorf("%w: table is required", domain.ErrInvalidInput)
	}
	table, err := ResolveTable(tableName)
	if err != nil {
		return nil, err
	}
	return &dto.MetaResponse{Table: table.Name, Fields: append([]string(nil), table.PublicFields...)}, nil
}
