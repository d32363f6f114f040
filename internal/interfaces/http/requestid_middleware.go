package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID header de correlación de peticiones.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware propaga el X-Request-ID entrante o genera uno nuevo, y lo
// devuelve siempre en la respuesta para correlacionar logs entre servicios.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
