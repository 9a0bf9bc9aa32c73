package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/attendance"
	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
)

// AttendanceHandler reportes de asistencia calculados sobre datos de ERPNext.
type AttendanceHandler struct {
	svc *attendance.Service
	ex  Exporters
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(svc *attendance.Service, ex Exporters) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, ex: ex}
}

// Absence godoc
// @Summary      Ausencias consecutivas
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  true   "YYYY-MM-DD"
// @Param        to          query  string  true   "YYYY-MM-DD"
// @Param        threshold   query  int     true   "Días mínimos de la racha"
// @Param        department  query  string  false  "Departamento"
// @Param        employee    query  string  false  "Empleado"
// @Param        format      query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.ReportEnvelope[dto.AbsenceRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/absence [get]
func (h *AttendanceHandler) Absence(c *fiber.Ctx) error {
	var q dto.AbsenceQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	rows, err := h.svc.Absence(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return renderReport(c, h.ex, "absence", rows, func() ports.ReportTable { return attendance.AbsenceTable(q, rows) })
}

// Overtime godoc
// @Summary      Horas extra y días compensatorios
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        from       query  string  true   "YYYY-MM-DD"
// @Param        to         query  string  true   "YYYY-MM-DD"
// @Param        monthwise  query  bool    false  "Agrupar por mes"
// @Param        format     query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.ReportEnvelope[dto.OvertimeRow]
// @Router       /api/reports/overtime [get]
func (h *AttendanceHandler) Overtime(c *fiber.Ctx) error {
	var q dto.OvertimeQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	rows, err := h.svc.Overtime(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return renderReport(c, h.ex, "overtime", rows, func() ports.ReportTable { return attendance.OvertimeTable(q, rows) })
}

// Headcount godoc
// @Summary      Ocupación por departamento
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        date     query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Param        cutoff   query  string  false  "HH:MM"
// @Param        company  query  string  false  "Empresa"
// @Param        format   query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.ReportEnvelope[dto.HeadcountRow]
// @Router       /api/reports/headcount [get]
func (h *AttendanceHandler) Headcount(c *fiber.Ctx) error {
	var q dto.HeadcountQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	rows, err := h.svc.Headcount(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return renderReport(c, h.ex, "headcount", rows, func() ports.ReportTable { return attendance.HeadcountTable(q, rows) })
}

// Punches resumen diario de marcajes.
func (h *AttendanceHandler) Punches(c *fiber.Ctx) error {
	var q dto.PunchQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	rows, err := h.svc.Punches(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return renderReport(c, h.ex, "punches", rows, func() ports.ReportTable { return attendance.PunchTable(q, rows) })
}

// Query godoc
// @Summary      Ejecutar un reporte de consulta de ERPNext
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QueryReportRequest  true  "report_name, filters"
// @Success      200   {object}  dto.QueryReportResponse
// @Router       /api/reports/query [post]
func (h *AttendanceHandler) Query(c *fiber.Ctx) error {
	var in dto.QueryReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.QueryReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
