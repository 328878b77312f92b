package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/definition-generator/internal/application/usecase"
	"github.com/jhoicas/definition-generator/internal/infrastructure/metrics"
	"github.com/jhoicas/definition-generator/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DefinitionUC *usecase.DefinitionUseCase
	Auth         AuthConfig
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log))

	// Públicas
	app.Get("/health", Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Protegidas (Bearer)
	auth := AuthMiddleware(deps.Auth)
	h := NewDefinitionHandler(deps.DefinitionUC)

	definition := app.Group("/definition", auth)
	definition.Post("/", h.Generate)
	definition.Post("/validate", h.Validate)
	definition.Get("/", h.List)
	definition.Get("/:id", h.Get)

	app.Get("/schema/:version", auth, h.Schema)
}
