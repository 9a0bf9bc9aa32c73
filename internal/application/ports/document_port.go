package ports

import (
	"context"
	"io"
)

// ReportTable tabla lista para exportar (PDF o planilla).
type ReportTable struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// PDFRenderer genera un PDF con la tabla.
type PDFRenderer interface {
	RenderTable(t ReportTable) ([]byte, error)
}

// SpreadsheetWriter genera un .xlsx con la fila de encabezados seguida de las filas.
type SpreadsheetWriter interface {
	WriteTable(t ReportTable) ([]byte, error)
}

// SpreadsheetReader lee la primera hoja de un .xlsx o .xls; el formato se elige por la extensión.
type SpreadsheetReader interface {
	ReadRows(filename string, r io.Reader) ([][]string, error)
}

// Mail mensaje saliente.
type Mail struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer puerto de salida de correo.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}
