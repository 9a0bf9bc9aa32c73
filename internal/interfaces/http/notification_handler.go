package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/notification"
)

// NotificationHandler códigos de un solo uso y correo de servicio.
type NotificationHandler struct {
	svc *notification.Service
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// SendOTP godoc
// @Summary      Enviar código OTP por correo
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendOTPRequest  true  "email"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sendOtp [post]
func (h *NotificationHandler) SendOTP(c *fiber.Ctx) error {
	var in dto.SendOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.SendOTP(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "OTP sent"})
}

// VerifyOTP valida y consume el código.
func (h *NotificationHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.VerifyOTP(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "OTP verified"})
}

// SendMail godoc
// @Summary      Enviar correo (alcance api)
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMailRequest  true  "to, subject, html, text"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /send-mail [post]
func (h *NotificationHandler) SendMail(c *fiber.Ctx) error {
	var in dto.SendMailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.SendMail(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "mail sent"})
}
