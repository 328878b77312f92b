package repository

import (
	"context"

	"github.com/jhoicas/definition-generator/internal/domain/entity"
)

// GenerationRepository define el puerto de persistencia del historial de generaciones (DIP).
// La implementación vive en infrastructure.
type GenerationRepository interface {
	Create(ctx context.Context, g *entity.Generation) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Generation, error)
	// List devuelve las generaciones más recientes primero.
	List(ctx context.Context, limit, offset int) ([]*entity.Generation, error)
}

// ArchiveStore guarda la salida cruda de cada generación en almacenamiento de objetos.
type ArchiveStore interface {
	// Put guarda content bajo key y devuelve la clave completa del objeto.
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
}
