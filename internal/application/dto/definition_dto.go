package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

// Valores por defecto de la petición de generación.
const (
	DefaultProvider = "anthropic"
	DefaultLocale   = "en-US"
	DefaultIndustry = "General"
)

// GenerateDefinitionRequest cuerpo de POST /definition. Todos los campos son opcionales.
// Definition admite un string JSON o un objeto/array; null equivale a ausente.
type GenerateDefinitionRequest struct {
	Provider   string          `json:"provider" example:"anthropic"`
	Locale     string          `json:"locale" example:"ru"`
	Industry   string          `json:"industry" example:"Plumbing"`
	Definition json.RawMessage `json:"definition,omitempty" swaggertype:"object"`
}

// ApplyDefaults completa los campos vacíos.
func (r *GenerateDefinitionRequest) ApplyDefaults() {
	if r.Provider == "" {
		r.Provider = DefaultProvider
	}
	if r.Locale == "" {
		r.Locale = DefaultLocale
	}
	if r.Industry == "" {
		r.Industry = DefaultIndustry
	}
}

// BaseDefinition devuelve la definición base como texto.
func (r GenerateDefinitionRequest) BaseDefinition() (string, error) {
	return definitionText(r.Definition)
}

// definitionText un string JSON se devuelve tal cual; cualquier otro valor se compacta.
func definitionText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: definition: %v", domain.ErrInvalidInput, err)
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", fmt.Errorf("%w: definition: %v", domain.ErrInvalidInput, err)
	}
	return buf.String(), nil
}

// GenerationResult respuesta de POST /definition. Result es el texto crudo del proveedor.
type GenerationResult struct {
	Result          string         `json:"result"`
	ID              string         `json:"id"`
	Provider        string         `json:"provider"`
	SchemaVersion   string         `json:"schema_version"`
	DurationSeconds float64        `json:"duration_seconds"`
	Violations      []ViolationDTO `json:"violations,omitempty"`
}

// Duration tiempo de la llamada al proveedor.
func (r GenerationResult) Duration() time.Duration {
	return time.Duration(r.DurationSeconds * float64(time.Second))
}

// ViolationDTO incumplimiento del contrato en la salida validada.
type ViolationDTO struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ToViolationDTOs convierte las violaciones del validador.
func ToViolationDTOs(vs []schema.Violation) []ViolationDTO {
	if len(vs) == 0 {
		return nil
	}
	out := make([]ViolationDTO, len(vs))
	for i, v := range vs {
		out[i] = ViolationDTO{Path: v.Path, Rule: v.Rule, Message: v.Message}
	}
	return out
}

// ValidateDefinitionRequest cuerpo de POST /definition/validate.
type ValidateDefinitionRequest struct {
	Definition json.RawMessage `json:"definition" swaggertype:"object"`
}

// Document devuelve el documento a validar; vacío si no se envió.
func (r ValidateDefinitionRequest) Document() (string, error) {
	return definitionText(r.Definition)
}

// ValidationResult respuesta de POST /definition/validate.
type ValidationResult struct {
	SchemaVersion string         `json:"schema_version"`
	Valid         bool           `json:"valid"`
	Violations    []ViolationDTO `json:"violations"`
}
