package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/leave"
)

// LeaveHandler carga masiva de asignaciones de licencia.
type LeaveHandler struct {
	uc *leave.UseCase
}

// NewLeaveHandler construye el handler.
func NewLeaveHandler(uc *leave.UseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// Upload godoc
// @Summary      Cargar asignaciones de licencia desde planilla
// @Tags         leave
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  ".xlsx o .xls"
// @Success      200   {object}  dto.LeaveUploadResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leave-allocations/upload [post]
func (h *LeaveHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Template descarga la planilla de carga con los empleados activos.
func (h *LeaveHandler) Template(c *fiber.Ctx) error {
	b, err := h.uc.Template(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "leave-allocation-template.xlsx", mimeXLSX, b)
}
