package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/report"
)

// ReportHandler ejecutor genérico de reportes sobre el almacén de usuarios.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Run godoc
// @Summary      Ejecutar reporte
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "TemplateTable, OutputColumns, QueryFields"
// @Success      200   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /reports [post]
func (h *ReportHandler) Run(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RunReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Meta godoc
// @Summary      Campos públicos de una tabla
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        table  query  string  true  "Nombre de la tabla"
// @Success      200    {object}  dto.MetaResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /meta [get]
func (h *ReportHandler) Meta(c *fiber.Ctx) error {
	out, err := h.uc.Meta(c.Query("table"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
