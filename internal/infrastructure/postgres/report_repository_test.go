package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/domain"
	"github.com/jhoicas/hrportal-api/internal/domain/repository"
)

func TestBuildReportQuery(t *testing.T) {
	query, args, fields, err := buildReportQuery(repository.ReportQuery{
		Table:   "users",
		Columns: []string{"name", "passwordHash", "email"},
		Filters: []repository.FieldMatch{
			{Field: "name", Value: "an"},
			{Field: "email", Value: "50%_off"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT id::text, name, email FROM "users" WHERE name::text ILIKE $1 AND email::text ILIKE $2 ORDER BY created_at`, query)
	assert.Equal(t, []any{"%an%", `%50\%\_off%`}, args)
	assert.Equal(t, []string{"_id", "name", "email"}, fields)
}

func TestBuildReportQuery_Errores(t *testing.T) {
	_, _, _, err := buildReportQuery(repository.ReportQuery{Table: "payroll"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedTable)

	_, _, _, err = buildReportQuery(repository.ReportQuery{
		Table:   "users",
		Filters: []repository.FieldMatch{{Field: "name; DROP TABLE users", Value: "x"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
