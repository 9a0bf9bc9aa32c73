package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalScope  = "scope"
	LocalEmail  = "email"
)

// AuthMiddleware valida el Bearer Token y exige uno de los alcances indicados.
// Token ausente o inválido: 401. Alcance no permitido: 403.
func AuthMiddleware(codec *jwt.Codec, scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := codec.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if !allowed(claims.Scope, scopes) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "token scope not allowed for this route"})
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// APITokenGate compuerta del nivel de servicio: cualquier fallo del token "api" responde 403.
func APITokenGate(codec *jwt.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, _, _ := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a valid api token is required"})
		}
		claims, err := codec.VerifyScope(tokenString, jwt.ScopeAPI)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "a valid api token is required"})
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization; vacío con código y mensaje si falta.
func bearerToken(c *fiber.Ctx) (string, string, string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header is required"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "format: Bearer <token>"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "MISSING_TOKEN", "empty token"
	}
	return tokenString, "", ""
}

func allowed(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.Subject)
	c.Locals(LocalScope, claims.Scope)
	c.Locals(LocalEmail, claims.Email)
}

// GetUserID devuelve el sujeto del token (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetScope devuelve el alcance del token.
func GetScope(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalScope).(string)
	return s
}
