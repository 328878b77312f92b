package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/entity"
	"github.com/jhoicas/definition-generator/internal/domain/repository"
)

// Asegura que GenerationRepo implementa repository.GenerationRepository.
var _ repository.GenerationRepository = (*GenerationRepo)(nil)

// schemaDDL crea la tabla del historial si no existe.
const schemaDDL = `
	CREATE TABLE IF NOT EXISTS generations (
		id               UUID PRIMARY KEY,
		provider         TEXT NOT NULL,
		model            TEXT NOT NULL DEFAULT '',
		locale           TEXT NOT NULL,
		language         TEXT NOT NULL,
		industry         TEXT NOT NULL,
		schema_version   TEXT NOT NULL,
		status           TEXT NOT NULL,
		result           TEXT NOT NULL DEFAULT '',
		error            TEXT NOT NULL DEFAULT '',
		duration_seconds NUMERIC(12,3) NOT NULL DEFAULT 0,
		archive_key      TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS generations_created_at_idx ON generations (created_at DESC);`

const generationColumns = `id, provider, model, locale, language, industry, schema_version, status,
	result, error, duration_seconds, archive_key, created_at`

// EnsureSchema aplica el DDL del historial. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear tabla generations: %w", err)
	}
	return nil
}

// GenerationRepo implementación del puerto GenerationRepository sobre PostgreSQL.
type GenerationRepo struct {
	db Querier
}

// NewGenerationRepository construye el adaptador de persistencia del historial.
func NewGenerationRepository(db Querier) *GenerationRepo {
	return &GenerationRepo{db: db}
}

// Create persiste una generación.
func (r *GenerationRepo) Create(ctx context.Context, g *entity.Generation) error {
	query := `
		INSERT INTO generations (` + generationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		g.ID, g.Provider, g.Model, g.Locale, g.Language, g.Industry, g.SchemaVersion, g.Status,
		g.Result, g.Error, DurationToSeconds(g.Duration), g.ArchiveKey, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: generación %s ya registrada", domain.ErrInvalidInput, g.ID)
		}
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

// GetByID obtiene una generación por ID. Devuelve nil, nil si no existe.
func (r *GenerationRepo) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations WHERE id = $1`
	g, err := scanGeneration(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get generation: %w", err)
	}
	return g, nil
}

// List devuelve las generaciones más recientes primero.
func (r *GenerationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		list = append(list, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*entity.Generation, error) {
	var g entity.Generation
	var seconds decimal.Decimal
	err := row.Scan(
		&g.ID, &g.Provider, &g.Model, &g.Locale, &g.Language, &g.Industry, &g.SchemaVersion, &g.Status,
		&g.Result, &g.Error, &seconds, &g.ArchiveKey, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Duration = SecondsToDuration(seconds)
	return &g, nil
}

// DurationToSeconds convierte a segundos con precisión de milisegundos (columna NUMERIC(12,3)).
func DurationToSeconds(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Shift(-3)
}

// SecondsToDuration inversa de DurationToSeconds.
func SecondsToDuration(s decimal.Decimal) time.Duration {
	return time.Duration(s.Shift(3).IntPart()) * time.Millisecond
}
