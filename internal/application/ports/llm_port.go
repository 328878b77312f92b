package ports

import "context"

// TextGenerator define el puerto de salida hacia los proveedores LLM.
// Cualquier adaptador (Anthropic, Google, OpenAI, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type TextGenerator interface {
	// Generate envía una instrucción de un solo turno y devuelve el texto crudo de la respuesta.
	// Los fallos remotos se devuelven como *domain.BackendError.
	Generate(ctx context.Context, instruction string) (string, error)
	// Name clave del proveedor ("anthropic", "google", "openai").
	Name() string
	// Model identificador del modelo que se envía al proveedor.
	Model() string
}

// ProviderRegistry resuelve la clave de proveedor de la petición a su adaptador.
type ProviderRegistry interface {
	// Lookup devuelve domain.ErrUnsupportedProvider si la clave no está registrada.
	Lookup(provider string) (TextGenerator, error)
	// Providers lista las claves registradas, ordenadas.
	Providers() []string
}
