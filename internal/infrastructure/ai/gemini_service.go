package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/definition-generator/internal/application/ports"
	"github.com/jhoicas/definition-generator/pkg/config"
)

// Verificar en tiempo de compilación que GeminiService implementa TextGenerator.
var _ ports.TextGenerator = (*GeminiService)(nil)

const (
	// ProviderGoogle clave del proveedor en las peticiones.
	ProviderGoogle = "google"

	geminiGeneratePath = "/v1beta/models/%s:generateContent"
)

// GeminiService adaptador de la API REST de Google Gemini.
// La API key viaja en la cabecera x-goog-api-key.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador.
func NewGeminiService(cfg config.GoogleConfig) *GeminiService {
	return &GeminiService{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(),
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

func (s *GeminiService) Name() string { return ProviderGoogle }

// Model devuelve el modelo configurado.
func (s *GeminiService) Model() string { return s.model }

// Generate llama a generateContent sin parámetros adicionales y concatena las partes de
// texto del primer candidato.
func (s *GeminiService) Generate(ctx context.Context, instruction string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: instruction}}}},
	}
	path := fmt.Sprintf(geminiGeneratePath, url.PathEscape(s.model))
	headers := map[string]string{"x-goog-api-key": s.apiKey}

	raw, status, err := postJSON(ctx, s.httpClient, ProviderGoogle, endpoint(s.baseURL, path), headers, payload)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if status != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		msg := ""
		if decodeErr == nil && resp.Error != nil {
			msg = fmt.Sprintf("%s: %s", resp.Error.Status, resp.Error.Message)
		}
		return "", apiError(ProviderGoogle, status, msg, raw)
	}
	if decodeErr != nil {
		return "", apiError(ProviderGoogle, status, "deserializar respuesta: "+decodeErr.Error(), raw)
	}

	if len(resp.Candidates) == 0 {
		return "", emptyResponse(ProviderGoogle)
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", emptyResponse(ProviderGoogle)
	}
	return b.String(), nil
}
