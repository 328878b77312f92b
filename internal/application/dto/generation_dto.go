package dto

import (
	"time"

	"github.com/jhoicas/definition-generator/internal/domain/entity"
)

// GenerationDTO registro del historial.
type GenerationDTO struct {
	ID              string    `json:"id"`
	Provider        string    `json:"provider"`
	Model           string    `json:"model,omitempty"`
	Locale          string    `json:"locale"`
	Language        string    `json:"language"`
	Industry        string    `json:"industry"`
	SchemaVersion   string    `json:"schema_version"`
	Status          string    `json:"status"`
	Result          string    `json:"result,omitempty"`
	Error           string    `json:"error,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	ArchiveKey      string    `json:"archive_key,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenerationListResponse respuesta de GET /definition.
type GenerationListResponse struct {
	Items []GenerationDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToGenerationDTO convierte la entidad del historial.
func ToGenerationDTO(g *entity.Generation) GenerationDTO {
	return GenerationDTO{
		ID:              g.ID,
		Provider:        g.Provider,
		Model:           g.Model,
		Locale:          g.Locale,
		Language:        g.Language,
		Industry:        g.Industry,
		SchemaVersion:   g.SchemaVersion,
		Status:          g.Status,
		Result:          g.Result,
		Error:           g.Error,
		DurationSeconds: g.Duration.Seconds(),
		ArchiveKey:      g.ArchiveKey,
		CreatedAt:       g.CreatedAt,
	}
}
