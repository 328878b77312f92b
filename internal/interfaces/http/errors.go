package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/pkg/logger"
)

// writeError traduce los errores de dominio a estado HTTP y cuerpo {"error","code"}.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrUnsupportedProvider):
		status, code = fiber.StatusBadRequest, "UNSUPPORTED_PROVIDER"
	case errors.Is(err, domain.ErrMissingBaseDefinition):
		status, code = fiber.StatusBadRequest, "MISSING_BASE_DEFINITION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrHistoryDisabled):
		status, code = fiber.StatusNotFound, "HISTORY_DISABLED"
	case errors.Is(err, domain.ErrUnknownSchemaVersion):
		status, code = fiber.StatusInternalServerError, "UNKNOWN_SCHEMA_VERSION"
	case errors.Is(err, domain.ErrBackendFailure) && errors.Is(err, context.DeadlineExceeded):
		status, code = fiber.StatusGatewayTimeout, "BACKEND_TIMEOUT"
	case errors.Is(err, domain.ErrBackendFailure):
		status, code = fiber.StatusBadGateway, "BACKEND_FAILURE"
	}
	if status >= fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext(), nil).Error().Err(err).Str("code", code).Msg("petición fallida")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

// badRequest respuesta 400 con código propio.
func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Code: code})
}
