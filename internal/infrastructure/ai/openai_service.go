package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jhoicas/definition-generator/internal/application/ports"
	"github.com/jhoicas/definition-generator/pkg/config"
)

// Verificar en tiempo de compilación que OpenAIService implementa TextGenerator.
var _ ports.TextGenerator = (*OpenAIService)(nil)

const (
	// ProviderOpenAI clave del proveedor en las peticiones.
	ProviderOpenAI = "openai"

	openAIChatPath = "/v1/chat/completions"
)

// OpenAIService adaptador de chat completions (OpenAI o compatible).
type OpenAIService struct {
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIService construye el adaptador.
func NewOpenAIService(cfg config.OpenAIConfig) *OpenAIService {
	return &OpenAIService{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  newHTTPClient(),
	}
}

// ── Estructuras internas de chat completions ──────────────────────────────────

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

func (s *OpenAIService) Name() string { return ProviderOpenAI }

// Model devuelve el modelo configurado.
func (s *OpenAIService) Model() string { return s.model }

// Generate envía la instrucción como único mensaje de usuario y devuelve choices[0].message.content.
func (s *OpenAIService) Generate(ctx context.Context, instruction string) (string, error) {
	payload := openAIRequest{
		Model:       s.model,
		Messages:    []openAIMessage{{Role: "user", Content: instruction}},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}

	raw, status, err := postJSON(ctx, s.httpClient, ProviderOpenAI, endpoint(s.baseURL, openAIChatPath), headers, payload)
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if status >= http.StatusBadRequest || status < http.StatusOK {
		msg := ""
		if decodeErr == nil && resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", apiError(ProviderOpenAI, status, msg, raw)
	}
	if decodeErr != nil {
		return "", apiError(ProviderOpenAI, status, "deserializar respuesta: "+decodeErr.Error(), raw)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", emptyResponse(ProviderOpenAI)
	}
	return resp.Choices[0].Message.Content, nil
}
