package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/application/ports"
	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/entity"
	"github.com/jhoicas/definition-generator/internal/domain/locale"
	"github.com/jhoicas/definition-generator/internal/domain/prompt"
	"github.com/jhoicas/definition-generator/internal/domain/repository"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
	"github.com/jhoicas/definition-generator/internal/infrastructure/metrics"
	"github.com/jhoicas/definition-generator/pkg/logger"
)

// sideEffectTimeout límite para guardar historial y archivo tras la generación.
const sideEffectTimeout = 10 * time.Second

// DefinitionOptions parámetros del despliegue.
type DefinitionOptions struct {
	Version        schema.Version
	Timeout        time.Duration
	ValidateOutput bool
}

// DefinitionUseCase orquesta la generación de una definición de tenant:
// locale → idioma, compilación de la instrucción, una llamada al proveedor y medición.
type DefinitionUseCase struct {
	providers ports.ProviderRegistry
	opts      DefinitionOptions
	history   repository.GenerationRepository // nil: historial deshabilitado
	archive   repository.ArchiveStore         // nil: sin archivo
	log       *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewDefinitionUseCase construye el orquestador. history y archive son opcionales (nil).
func NewDefinitionUseCase(
	providers ports.ProviderRegistry,
	opts DefinitionOptions,
	history repository.GenerationRepository,
	archive repository.ArchiveStore,
	log *logger.Logger,
) *DefinitionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DefinitionUseCase{
		providers: providers,
		opts:      opts,
		history:   history,
		archive:   archive,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// SchemaVersion versión del contrato con la que compila este despliegue.
func (uc *DefinitionUseCase) SchemaVersion() schema.Version {
	return uc.opts.Version
}

// Generate ejecuta una generación. Devuelve el texto del proveedor sin modificar.
// Errores: ErrInvalidInput, ErrUnsupportedProvider, ErrUnknownSchemaVersion,
// ErrMissingBaseDefinition o *domain.BackendError.
func (uc *DefinitionUseCase) Generate(ctx context.Context, req dto.GenerateDefinitionRequest) (*dto.GenerationResult, error) {
	req.ApplyDefaults()
	log := logger.FromContext(ctx, uc.log)

	base, err := req.BaseDefinition()
	if err != nil {
		return nil, err
	}

	// Proveedor desconocido: se falla antes de compilar y sin llamadas remotas.
	gen, err := uc.providers.Lookup(req.Provider)
	if err != nil {
		return nil, err
	}

	language := locale.Resolve(req.Locale)
	instruction, err := prompt.Compile(prompt.Input{
		Version:        uc.opts.Version,
		Language:       language,
		Industry:       req.Industry,
		BaseDefinition: base,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", gen.Name()).
		Str("model", gen.Model()).
		Str("locale", req.Locale).
		Str("language", language).
		Str("industry", req.Industry).
		Str("schema_version", string(uc.opts.Version)).
		Bool("with_base", base != "").
		Msg("generando definición")

	text, elapsed, err := uc.dispatch(ctx, gen, instruction)

	record := &entity.Generation{
		ID:            uc.newID(),
		Provider:      gen.Name(),
		Model:         gen.Model(),
		Locale:        req.Locale,
		Language:      language,
		Industry:      req.Industry,
		SchemaVersion: string(uc.opts.Version),
		Status:        entity.GenerationSucceeded,
		Result:        text,
		Duration:      elapsed,
		CreatedAt:     uc.now().UTC(),
	}
	if err != nil {
		record.Status = entity.GenerationFailed
		record.Error = err.Error()
		metrics.ObserveGeneration(gen.Name(), entity.GenerationFailed, elapsed)
		log.Error().Err(err).
			Str("id", record.ID).
			Str("provider", gen.Name()).
			Dur("duration", elapsed).
			Msg("fallo del proveedor")
		uc.persist(ctx, record)
		return nil, err
	}
	metrics.ObserveGeneration(gen.Name(), entity.GenerationSucceeded, elapsed)
	log.Info().
		Str("id", record.ID).
		Str("provider", gen.Name()).
		Float64("duration_seconds", elapsed.Seconds()).
		Int("chars", len(text)).
		Msgf("definición generada en %.2f segundos", elapsed.Seconds())

	result := &dto.GenerationResult{
		Result:          text,
		ID:              record.ID,
		Provider:        gen.Name(),
		SchemaVersion:   string(uc.opts.Version),
		DurationSeconds: elapsed.Seconds(),
	}
	if uc.opts.ValidateOutput {
		result.Violations = uc.validate(log, text)
	}

	uc.persist(ctx, record)
	return result, nil
}

// dispatch única llamada bloqueante, acotada por opts.Timeout. El tiempo se mide solo aquí.
func (uc *DefinitionUseCase) dispatch(ctx context.Context, gen ports.TextGenerator, instruction string) (string, time.Duration, error) {
	if uc.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := gen.Generate(ctx, instruction)
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, asBackendError(ctx, gen.Name(), err)
	}
	return text, elapsed, nil
}

// asBackendError garantiza que cualquier fallo de la llamada sea un *domain.BackendError
// y que un timeout conserve context.DeadlineExceeded.
func asBackendError(ctx context.Context, provider string, err error) error {
	var be *domain.BackendError
	if errors.As(err, &be) {
		if be.Err == nil && ctx.Err() != nil {
			be.Err = ctx.Err()
		}
		return be
	}
	cause := err
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		cause = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return &domain.BackendError{Provider: provider, Message: err.Error(), Err: cause}
}

func (uc *DefinitionUseCase) validate(log *logger.Logger, text string) []dto.ViolationDTO {
	contract, err := schema.Describe(uc.opts.Version)
	if err != nil {
		log.Warn().Err(err).Msg("validación omitida")
		return nil
	}
	violations := schema.Validate(contract, []byte(text))
	metrics.IncValidationRun(len(violations) == 0)
	if len(violations) > 0 {
		log.Warn().
			Int("violations", len(violations)).
			Str("first", violations[0].String()).
			Msg("la salida no cumple el contrato")
	}
	return dto.ToViolationDTOs(violations)
}

// persist archiva la salida y guarda el registro. Los fallos solo se registran.
func (uc *DefinitionUseCase) persist(ctx context.Context, g *entity.Generation) {
	if uc.archive == nil && uc.history == nil {
		return
	}
	log := logger.FromContext(ctx, uc.log)
	// La petición puede haberse cancelado; los efectos secundarios usan su propio plazo.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if uc.archive != nil && g.Status == entity.GenerationSucceeded {
		key, err := uc.archive.Put(ctx, ArchiveKey(g), []byte(g.Result), "application/json")
		if err != nil {
			metrics.IncSideEffectError("archive")
			log.Warn().Err(err).Str("id", g.ID).Msg("no se pudo archivar la salida")
		} else {
			g.ArchiveKey = key
		}
	}
	if uc.history != nil {
		if err := uc.history.Create(ctx, g); err != nil {
			metrics.IncSideEffectError("history")
			log.Warn().Err(err).Str("id", g.ID).Msg("no se pudo guardar el historial")
		}
	}
}

// ArchiveKey clave del objeto: año/mes/día/id.json según la fecha de creación.
func ArchiveKey(g *entity.Generation) string {
	return path.Join(g.CreatedAt.UTC().Format("2006/01/02"), g.ID+".json")
}

// Get devuelve una generación del historial.
func (uc *DefinitionUseCase) Get(ctx context.Context, id string) (*dto.GenerationDTO, error) {
	if uc.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: generación %s", domain.ErrNotFound, id)
	}
	g, err := uc.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: generación %s", domain.ErrNotFound, id)
	}
	out := dto.ToGenerationDTO(g)
	return &out, nil
}

// List devuelve el historial paginado, lo más reciente primero.
func (uc *DefinitionUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.GenerationListResponse, error) {
	if uc.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	page.DefaultPage()
	list, err := uc.history.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GenerationDTO, 0, len(list))
	for _, g := range list {
		items = append(items, dto.ToGenerationDTO(g))
	}
	return &dto.GenerationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ValidateDocument valida un documento contra el contrato del despliegue.
func (uc *DefinitionUseCase) ValidateDocument(req dto.ValidateDefinitionRequest) (*dto.ValidationResult, error) {
	doc, err := req.Document()
	if err != nil {
		return nil, err
	}
	if doc == "" {
		return nil, fmt.Errorf("%w: definition es obligatorio", domain.ErrInvalidInput)
	}
	contract, err := schema.Describe(uc.opts.Version)
	if err != nil {
		return nil, err
	}
	violations := dto.ToViolationDTOs(schema.Validate(contract, []byte(doc)))
	if violations == nil {
		violations = []dto.ViolationDTO{}
	}
	return &dto.ValidationResult{
		SchemaVersion: string(contract.Version),
		Valid:         len(violations) == 0,
		Violations:    violations,
	}, nil
}

// Contract descripción estructurada de una versión del contrato.
func (uc *DefinitionUseCase) Contract(version string) (*schema.Contract, error) {
	v, err := schema.ParseVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	c, err := schema.Describe(v)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
