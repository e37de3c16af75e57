package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalClientID = "client_id"
	LocalSource   = "source"
)

// AuthMiddleware valida el Bearer Token JWT y extrae ClientID y Source a
// c.Locals. Con secret vacío la API corre abierta y el middleware es un
// pass-through.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret == "" {
			return c.Next()
		}
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondError(c, fiber.StatusUnauthorized, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondError(c, fiber.StatusUnauthorized, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondError(c, fiber.StatusUnauthorized, "token vacío")
		}
		clientID, source, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "token inválido o expirado")
		}
		c.Locals(LocalClientID, clientID)
		c.Locals(LocalSource, source)
		return c.Next()
	}
}

// GetClientID devuelve el ClientID del contexto (después del middleware de auth).
func GetClientID(c *fiber.Ctx) string {
	v := c.Locals(LocalClientID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSource devuelve el Source del token (después del middleware de auth).
func GetSource(c *fiber.Ctx) string {
	v := c.Locals(LocalSource)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
