// Package spreadsheet lee y escribe planillas: .xlsx con excelize y .xls heredado con extrame/xls.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

var (
	_ ports.SpreadsheetReader = (*Reader)(nil)
	_ ports.SpreadsheetWriter = (*Writer)(nil)
)

// ErrUnsupportedFormat extensión distinta de .xlsx o .xls.
var ErrUnsupportedFormat = fmt.Errorf("%w: unsupported spreadsheet format (use .xlsx or .xls)", domain.ErrInvalidInput)

var (
	errNoSheets   = fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInput)
	errEmptySheet = fmt.Errorf("%w: sheet is empty", domain.ErrInvalidInput)
)

const (
	maxUpload  = 10 << 20
	maxXLSRows = 100000
)

// Reader lee la primera hoja. Las celdas de .xlsx se leen crudas: las fechas llegan como serial de Excel.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadRows elige el formato por extensión.
func (r *Reader) ReadRows(filename string, in io.Reader) ([][]string, error) {
	data, err := io.ReadAll(io.LimitReader(in, maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("leer planilla: %w", err)
	}
	if len(data) > maxUpload {
		return nil, fmt.Errorf("%w: spreadsheet exceeds %d bytes", domain.ErrInvalidInput, maxUpload)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".xlsx":
		return readXLSX(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open .xls: %v", domain.ErrInvalidInput, err)
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheets
	}
	rows := wb.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, errEmptySheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open .xlsx: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", domain.ErrInvalidInput, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errEmptySheet
	}
	return rows, nil
}
