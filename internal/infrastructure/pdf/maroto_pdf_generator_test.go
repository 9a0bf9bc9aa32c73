package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
)

func TestRenderTable_ProducesPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("test")
	out, err := g.RenderTable(ports.ReportTable{
		Title:    "Absence",
		Subtitle: "2024-01-01 to 2024-01-31",
		Headers:  []string{"Employee ID", "Employee Name", "From", "To", "Days"},
		Rows: [][]string{
			{"EMP-001", "Ana", "2024-01-02", "2024-01-05", "4"},
			{"EMP-002", "Luis"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderTable_WideTableAndEmptyRows(t *testing.T) {
	headers := make([]string, 14)
	for i := range headers {
		headers[i] = "C"
	}
	out, err := NewMarotoPDFGenerator("").RenderTable(ports.ReportTable{Title: "Wide", Headers: headers})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderTable_RequiresHeaders(t *testing.T) {
	_, err := NewMarotoPDFGenerator("").RenderTable(ports.ReportTable{Title: "x"})
	assert.Error(t, err)
}

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnWidths(12, 5))
	assert.Equal(t, []int{12}, columnWidths(12, 1))
	assert.Equal(t, 14, gridSize(14))
	assert.Equal(t, 12, gridSize(3))
}
