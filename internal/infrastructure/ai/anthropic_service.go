package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/definition-generator/internal/application/ports"
	"github.com/jhoicas/definition-generator/pkg/config"
)

// Verificar en tiempo de compilación que AnthropicService implementa TextGenerator.
var _ ports.TextGenerator = (*AnthropicService)(nil)

const (
	// ProviderAnthropic clave del proveedor en las peticiones.
	ProviderAnthropic = "anthropic"

	anthropicMessagesPath = "/v1/messages"
	anthropicVersion      = "2023-06-01"
)

// AnthropicService adaptador de la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. Una API key vacía se envía tal cual y el
// error de autenticación lo devuelve la API.
func NewAnthropicService(cfg config.AnthropicConfig) *AnthropicService {
	return &AnthropicService{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		maxTokens:  cfg.MaxTokens,
		httpClient: newHTTPClient(),
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

func (s *AnthropicService) Name() string { return ProviderAnthropic }

// Model devuelve el modelo configurado.
func (s *AnthropicService) Model() string { return s.model }

// Generate envía la instrucción como único mensaje de usuario y devuelve el primer bloque de texto.
func (s *AnthropicService) Generate(ctx context.Context, instruction string) (string, error) {
	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: instruction}},
	}
	headers := map[string]string{
		"x-api-key":         s.apiKey,
		"anthropic-version": anthropicVersion,
	}

	raw, status, err := postJSON(ctx, s.httpClient, ProviderAnthropic, endpoint(s.baseURL, anthropicMessagesPath), headers, payload)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	decodeErr := json.Unmarshal(raw, &resp)

	// Manejar errores HTTP de la API de Anthropic
	if status != http.StatusOK {
		msg := ""
		if decodeErr == nil && resp.Error != nil {
			msg = fmt.Sprintf("%s: %s", resp.Error.Type, resp.Error.Message)
		}
		return "", apiError(ProviderAnthropic, status, msg, raw)
	}
	if decodeErr != nil {
		return "", apiError(ProviderAnthropic, status, "deserializar respuesta: "+decodeErr.Error(), raw)
	}

	for _, block := range resp.Content {
		if block.Type == "text" || block.Type == "" {
			if strings.TrimSpace(block.Text) == "" {
				break
			}
			return block.Text, nil
		}
	}
	return "", emptyResponse(ProviderAnthropic)
}
