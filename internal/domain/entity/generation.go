package entity

import "time"

// Estados posibles de una generación.
const (
	GenerationSucceeded = "succeeded"
	GenerationFailed    = "failed"
)

// Generation registro de auditoría de una ejecución del orquestador.
// Result guarda el texto crudo devuelto por el proveedor, sin validar.
type Generation struct {
	ID            string
	Provider      string
	Model         string
	Locale        string
	Language      string
	Industry      string
	SchemaVersion string
	Status        string
	Result        string
	Error         string
	Duration      time.Duration
	ArchiveKey    string // clave del objeto con la salida cruda; vacío si no se archivó
	CreatedAt     time.Time
}
