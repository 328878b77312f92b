package ai

import (
	"fmt"
	"sort"

	"github.com/jhoicas/definition-generator/internal/application/ports"
	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/pkg/config"
)

var _ ports.ProviderRegistry = (*Registry)(nil)

// Registry asocia la clave de proveedor con su adaptador. Se construye una vez al arrancar
// y solo se lee después.
type Registry struct {
	generators map[string]ports.TextGenerator
}

// NewRegistry registra los tres proveedores soportados con la configuración cargada.
func NewRegistry(cfg config.AIConfig) *Registry {
	return NewRegistryWith(
		NewAnthropicService(cfg.Anthropic),
		NewGeminiService(cfg.Google),
		NewOpenAIService(cfg.OpenAI),
	)
}

// NewRegistryWith registra los generadores dados bajo su Name().
func NewRegistryWith(generators ...ports.TextGenerator) *Registry {
	r := &Registry{generators: make(map[string]ports.TextGenerator, len(generators))}
	for _, g := range generators {
		r.generators[g.Name()] = g
	}
	return r
}

// Lookup devuelve el adaptador o domain.ErrUnsupportedProvider.
func (r *Registry) Lookup(provider string) (ports.TextGenerator, error) {
	g, ok := r.generators[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q (use %v)", domain.ErrUnsupportedProvider, provider, r.Providers())
	}
	return g, nil
}

// Providers lista las claves registradas, ordenadas.
func (r *Registry) Providers() []string {
	out := make([]string, 0, len(r.generators))
	for name := range r.generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
