package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/definition-generator/docs"
	"github.com/jhoicas/definition-generator/internal/application/usecase"
	"github.com/jhoicas/definition-generator/internal/domain/repository"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
	infraai "github.com/jhoicas/definition-generator/internal/infrastructure/ai"
	"github.com/jhoicas/definition-generator/internal/infrastructure/postgres"
	"github.com/jhoicas/definition-generator/internal/infrastructure/storage/s3"
	httpRouter "github.com/jhoicas/definition-generator/internal/interfaces/http"
	"github.com/jhoicas/definition-generator/pkg/config"
	"github.com/jhoicas/definition-generator/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("schema_version", cfg.Generation.SchemaVersion).
		Dur("generation_timeout", cfg.Generation.Timeout).
		Bool("validate_output", cfg.Generation.ValidateOutput).
		Msg("iniciando aplicación")
	if cfg.Auth.APIToken == "" && cfg.JWT.Secret == "" {
		log.Warn().Msg("API_TOKEN y JWT_SECRET vacíos: todas las rutas protegidas responderán 401")
	}

	ctx := context.Background()

	// Historial opcional (DATABASE_URL)
	var history repository.GenerationRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema del historial")
		}
		history = postgres.NewGenerationRepository(pool)
		log.Info().Msg("historial de generaciones habilitado")
	}

	// Archivo opcional de la salida cruda (S3_ENDPOINT)
	var archive repository.ArchiveStore
	if cfg.S3.Enabled() {
		store, err := s3.New(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		archive = store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("archivo de salidas habilitado")
	}

	registry := infraai.NewRegistry(cfg.AI)
	definitionUC := usecase.NewDefinitionUseCase(registry, usecase.DefinitionOptions{
		Version:        schema.Version(cfg.Generation.SchemaVersion),
		Timeout:        cfg.Generation.Timeout,
		ValidateOutput: cfg.Generation.ValidateOutput,
	}, history, archive, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Definition Generator API",
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "code": "NOT_FOUND"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DefinitionUC: definitionUC,
		Auth: httpRouter.AuthConfig{
			APIToken:  cfg.Auth.APIToken,
			JWTSecret: cfg.JWT.Secret,
			JWTIssuer: cfg.JWT.Issuer,
		},
		Log: log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Strs("providers", registry.Providers()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
