package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Exporters renderizadores de descarga compartidos por los handlers de reportes.
type Exporters struct {
	PDF  ports.PDFRenderer
	XLSX ports.SpreadsheetWriter
}

// renderReport responde JSON por defecto, o un adjunto según ?format=pdf|xlsx.
func renderReport[T any](c *fiber.Ctx, ex Exporters, name string, rows []T, table func() ports.ReportTable) error {
	switch strings.ToLower(strings.TrimSpace(c.Query("format"))) {
	case "", "json":
		if rows == nil {
			rows = []T{}
		}
		return c.JSON(dto.ReportEnvelope[T]{Success: true, Count: len(rows), Data: rows})
	case "pdf":
		b, err := ex.PDF.RenderTable(table())
		if err != nil {
			return respondError(c, err)
		}
		return sendAttachment(c, name+".pdf", mimePDF, b)
	case "xlsx":
		b, err := ex.XLSX.WriteTable(table())
		if err != nil {
			return respondError(c, err)
		}
		return sendAttachment(c, name+".xlsx", mimeXLSX, b)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format must be json, pdf or xlsx"})
	}
}

func sendAttachment(c *fiber.Ctx, filename, mime string, body []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
