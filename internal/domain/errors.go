package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrUnsupportedProvider   = errors.New("proveedor no soportado")
	ErrUnknownSchemaVersion  = errors.New("versión de esquema desconocida")
	ErrMissingBaseDefinition = errors.New("la versión de esquema requiere una definición base")
	ErrBackendFailure        = errors.New("fallo del proveedor de generación")
	ErrHistoryDisabled       = errors.New("historial de generaciones no configurado")
)

// BackendError describe un fallo de la llamada remota a un proveedor LLM
// (red, cuota, credenciales inválidas, respuesta vacía o timeout).
// errors.Is(err, ErrBackendFailure) es verdadero para cualquier BackendError.
type BackendError struct {
	Provider   string
	StatusCode int // 0 si no hubo respuesta HTTP
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrBackendFailure) sin perder la causa original.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendFailure
}
