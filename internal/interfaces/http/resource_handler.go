package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/usecase"
)

// ResourceHandler proxy CRUD a los doctypes permitidos de ERPNext.
type ResourceHandler struct {
	uc        *usecase.ResourceUseCase
	employees *usecase.EmployeeUseCase
}

// NewResourceHandler construye el handler.
func NewResourceHandler(uc *usecase.ResourceUseCase, employees *usecase.EmployeeUseCase) *ResourceHandler {
	return &ResourceHandler{uc: uc, employees: employees}
}

// List godoc
// @Summary      Listar documentos
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        doctype   path   string  true   "Slug del recurso (employees, departments, ...)"
// @Param        fields    query  string  false  "Lista separada por comas"
// @Param        filters   query  string  false  "JSON [[campo, op, valor], ...]"
// @Param        limit     query  int     false  "0 = todas las filas"
// @Param        offset    query  int     false  "Offset"
// @Param        order_by  query  string  false  "Orden"
// @Success      200  {object}  dto.ResourceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{doctype} [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	in := dto.ResourceListRequest{
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)},
		Fields:      c.Query("fields"),
		Filters:     c.Query("filters"),
		OrderBy:     c.Query("order_by"),
	}
	out, err := h.uc.List(c.UserContext(), c.Params("doctype"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// docName decodifica el name del path: los nombres de ERPNext llevan espacios
// ("Human Resources - AC") y fiber entrega el segmento sin decodificar.
func docName(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}

// Get obtiene un documento por name.
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	name, err := docName(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Get(c.UserContext(), c.Params("doctype"), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear documento
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        doctype  path  string  true  "Slug del recurso"
// @Success      201  {object}  dto.ResourceResponse
// @Router       /api/resources/{doctype} [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var doc map[string]any
	if err := c.BodyParser(&doc); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("doctype"), doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza campos de un documento.
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	var doc map[string]any
	if err := c.BodyParser(&doc); err != nil {
		return badBody(c)
	}
	name, err := docName(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("doctype"), name, doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un documento.
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	name, err := docName(c)
	if err != nil {
		return badQuery(c)
	}
	if err := h.uc.Delete(c.UserContext(), c.Params("doctype"), name); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "deleted"})
}

// ExportEmployees descarga el padrón de empleados como .xlsx.
func (h *ResourceHandler) ExportEmployees(c *fiber.Ctx) error {
	b, err := h.employees.Export(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "employees.xlsx", mimeXLSX, b)
}
