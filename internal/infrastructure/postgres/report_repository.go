package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// reportColumns campo lógico -> columna física por tabla. Solo estos nombres llegan al SQL.
var reportColumns = map[string]map[string]string{
	"users": {
		"_id":       "id::text",
		"name":      "name",
		"email":     "email",
		"mobile":    "mobile",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
}

// ReportRepo ejecutor de reportes sobre PostgreSQL.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Find SELECT con proyección y filtros ILIKE de subcadena literal.
func (r *ReportRepo) Find(ctx context.Context, q repository.ReportQuery) ([]map[string]any, error) {
	query, args, fields, err := buildReportQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[f] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// buildReportQuery arma el SQL. Columnas desconocidas en la proyección se ignoran;
// en un filtro son error de entrada.
func buildReportQuery(q repository.ReportQuery) (string, []any, []string, error) {
	cols, ok := reportColumns[q.Table]
	if !ok {
		return "", nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedTable, q.Table)
	}

	fields := []string{"_id"}
	selects := []string{cols["_id"]}
	for _, c := range q.Columns {
		col, ok := cols[c]
		if !ok || c == "_id" {
			continue
		}
		fields = append(fields, c)
		selects = append(selects, col)
	}

	var where []string
	var args []any
	for _, f := range q.Filters {
		col, ok := cols[f.Field]
		if !ok {
			return "", nil, nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, f.Field)
		}
		args = append(args, containsPattern(f.Value))
		where = append(where, fmt.Sprintf("%s::text ILIKE $%d", col, len(args)))
	}

	query := "SELECT " + strings.Join(selects, ", ") + " FROM " + pgx.Identifier{q.Table}.Sanitize()
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at"
	return query, args, fields, nil
}
