package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/definition-generator/internal/domain"
)

// maxResponseBytes límite de lectura de la respuesta; una definición completa cabe con holgura.
const maxResponseBytes = 4 << 20

// defaultHTTPTimeout timeout de red por defecto; el caso de uso impone además un context.WithTimeout.
const defaultHTTPTimeout = 5 * time.Minute

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// postJSON serializa payload, lo envía y devuelve el cuerpo y el status de la respuesta.
// Los fallos de transporte se devuelven como *domain.BackendError.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: serializar request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: crear HTTP request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, &domain.BackendError{Provider: provider, Message: "timeout o cancelación", Err: ctx.Err()}
		}
		return nil, 0, &domain.BackendError{Provider: provider, Message: "llamada HTTP fallida", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, &domain.BackendError{Provider: provider, StatusCode: resp.StatusCode, Message: "leer respuesta", Err: err}
	}
	return raw, resp.StatusCode, nil
}

// apiError mensaje de error de la API o, si no se puede extraer, el cuerpo recortado.
func apiError(provider string, status int, msg string, raw []byte) error {
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
		if len(msg) > 512 {
			msg = msg[:512]
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.BackendError{Provider: provider, StatusCode: status, Message: msg}
}

func emptyResponse(provider string) error {
	return &domain.BackendError{Provider: provider, StatusCode: http.StatusOK, Message: "respuesta vacía", Err: errEmptyResponse}
}

var errEmptyResponse = errors.New("el proveedor no devolvió texto")

func endpoint(baseURL, path string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + path
}
