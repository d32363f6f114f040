package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/pkg/jwt"
)

// Local key para el auth subject en Fiber.
const LocalAuthSubject = "auth_subject"

// AuthMiddleware valida el Bearer Token JWT y extrae el auth subject a c.Locals.
// El token es de sesión server-side: lo emite esta API tras validar la identidad
// externa, con el subject del proveedor como claim.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		authSubject, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalAuthSubject, authSubject)
		return c.Next()
	}
}

// GetAuthSubject devuelve el auth subject del contexto (después del middleware de auth).
func GetAuthSubject(c *fiber.Ctx) string {
	v := c.Locals(LocalAuthSubject)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
