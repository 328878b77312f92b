package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/pkg/jwt"
)

// LocalSubject clave en c.Locals con el cliente autenticado.
const LocalSubject = "subject"

// subjectStaticToken sujeto asignado a las peticiones con el API_TOKEN estático.
const subjectStaticToken = "api-token"

// AuthConfig credenciales aceptadas por el middleware. Un campo vacío desactiva ese método.
type AuthConfig struct {
	APIToken  string
	JWTSecret string
	JWTIssuer string
}

// AuthMiddleware exige "Authorization: Bearer <token>". El token puede ser el API_TOKEN
// estático o un JWT de servicio firmado con JWT_SECRET.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token is missing!", Code: "MISSING_TOKEN"})
		}
		token := strings.TrimSpace(parts[1])

		if cfg.APIToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cfg.APIToken)) == 1 {
			c.Locals(LocalSubject, subjectStaticToken)
			return c.Next()
		}
		if cfg.JWTSecret != "" {
			if subject, err := jwt.Parse(cfg.JWTSecret, cfg.JWTIssuer, token); err == nil {
				c.Locals(LocalSubject, subject)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token!", Code: "INVALID_TOKEN"})
	}
}

// GetSubject devuelve el cliente autenticado (después del middleware de auth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}
