package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío: se usa el detalle del error envuelto
}

// El orden importa: ErrNoData y ErrInvalidCredentials antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrUnsupportedTable, fiber.StatusBadRequest, "UNSUPPORTED_TABLE", "unsupported table"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED", domain.ErrInvalidCredentials.Error()},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "forbidden"},
	{domain.ErrNoData, fiber.StatusNotFound, "NO_DATA", domain.ErrNoData.Error()},
	{domain.ErrUnknownResource, fiber.StatusNotFound, "UNKNOWN_RESOURCE", "unknown resource"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "email already registered"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflict with current state"},
	{domain.ErrUpstreamAuth, fiber.StatusBadGateway, "UPSTREAM_AUTH", "ERPNext rejected the gateway credentials"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM", "ERPNext request failed"},
}

// respondError traduce errores de dominio a HTTP. Los 5xx se registran con el detalle
// y el cliente recibe un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("fallo upstream")
		}
		msg := m.message
		if msg == "" {
			msg = detail(err, m.target)
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
}

// detail devuelve lo que sigue a "<sentinel>: " en el mensaje, o el mensaje completo.
func detail(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
}
