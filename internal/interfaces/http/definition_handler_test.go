package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/definition-generator/internal/application/usecase"
	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/prompt"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
	"github.com/jhoicas/definition-generator/internal/infrastructure/ai"
	apphttp "github.com/jhoicas/definition-generator/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubGenerator struct {
	mu           sync.Mutex
	name         string
	text         string
	err          error
	block        bool
	instructions []string
}

func (s *stubGenerator) Name() string  { return s.name }
func (s *stubGenerator) Model() string { return "stub" }

func (s *stubGenerator) Generate(ctx context.Context, instruction string) (string, error) {
	s.mu.Lock()
	s.instructions = append(s.instructions, instruction)
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return "", &domain.BackendError{Provider: s.name, Message: "timeout", Err: ctx.Err()}
	}
	return s.text, s.err
}

type apiFixture struct {
	app       *fiber.App
	anthropic *stubGenerator
	google    *stubGenerator
}

func newAPI(t *testing.T, opts usecase.DefinitionOptions) apiFixture {
	t.Helper()
	if opts.Version == "" {
		opts.Version = schema.V1
	}
	f := apiFixture{
		anthropic: &stubGenerator{name: "anthropic", text: `{"catalog_units":[]}`},
		google:    &stubGenerator{name: "google", text: "gemini"},
	}
	uc := usecase.NewDefinitionUseCase(ai.NewRegistryWith(f.anthropic, f.google), opts, nil, nil, nil)
	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{DefinitionUC: uc, Auth: testAuthConfig()})
	return f
}

func (f apiFixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testAPIToken)
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_SinAutenticacion(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRequestID_SeRespeta(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestMetrics_Expuestas(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	_, _ = f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "defgen_http_requests_total")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /definition
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_SinToken(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	req := httptest.NewRequest(http.MethodPost, "/definition", strings.NewReader(`{"provider":"anthropic"}`))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, f.anthropic.instructions)
}

func TestGenerate_CuerpoVacioOInvalido(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	cases := map[string]string{
		"":               "NO_DATA",
		"null":           "NO_DATA",
		"{}":             "NO_DATA",
		"{bad":           "INVALID_BODY",
		"[1,2]":          "INVALID_BODY",
		`{"provider":5}`: "INVALID_BODY",
	}
	for body, code := range cases {
		resp, out := f.do(t, http.MethodPost, "/definition", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.Equal(t, code, out["code"], "body %q", body)
	}
	assert.Empty(t, f.anthropic.instructions)
}

func TestGenerate_OK(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, out := f.do(t, http.MethodPost, "/definition", `{"provider":"anthropic","locale":"ru","industry":"Plumbing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, `{"catalog_units":[]}`, out["result"])
	assert.Equal(t, "anthropic", out["provider"])
	assert.Equal(t, "v1", out["schema_version"])
	assert.NotEmpty(t, out["id"])
	assert.NotContains(t, out, "violations")

	require.Len(t, f.anthropic.instructions, 1)
	assert.Contains(t, f.anthropic.instructions[0], "Russian")
	assert.Contains(t, f.anthropic.instructions[0], "Plumbing")
}

func TestGenerate_DefinicionObjetoSeCompacta(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, _ := f.do(t, http.MethodPost, "/definition", `{"provider":"google","definition":{ "templates" : [ ] }}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, f.google.instructions, 1)
	assert.Contains(t, f.google.instructions[0], prompt.BaseHeader+`{"templates":[]}`)
}

func TestGenerate_ProveedorNoSoportado(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, out := f.do(t, http.MethodPost, "/definition", `{"provider":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_PROVIDER", out["code"])
	assert.Empty(t, f.anthropic.instructions)
	assert.Empty(t, f.google.instructions)
}

func TestGenerate_BaseObligatoriaEnV3(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{Version: schema.V3})

	resp, out := f.do(t, http.MethodPost, "/definition", `{"industry":"Plumbing"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_BASE_DEFINITION", out["code"])
}

func TestGenerate_FalloDelProveedor(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})
	f.google.err = &domain.BackendError{Provider: "google", StatusCode: 403, Message: "API key not valid"}

	resp, out := f.do(t, http.MethodPost, "/definition", `{"provider":"google"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "BACKEND_FAILURE", out["code"])
	assert.Contains(t, out["error"], "API key not valid")
}

func TestGenerate_TimeoutDelProveedor(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{Timeout: 20 * time.Millisecond})
	f.anthropic.block = true

	resp, out := f.do(t, http.MethodPost, "/definition", `{"provider":"anthropic"}`)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "BACKEND_TIMEOUT", out["code"])
}

func TestGenerate_ConValidacion(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{ValidateOutput: true})
	f.anthropic.text = "no es json"

	resp, out := f.do(t, http.MethodPost, "/definition", `{"provider":"anthropic"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no es json", out["result"])
	assert.NotEmpty(t, out["violations"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación, historial y contrato
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, out := f.do(t, http.MethodPost, "/definition/validate", `{"definition":"{\"catalog_units\":[]}"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["valid"])
	assert.NotEmpty(t, out["violations"])

	resp, out = f.do(t, http.MethodPost, "/definition/validate", `{"other":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", out["code"])
	assert.Empty(t, f.anthropic.instructions)
}

func TestHistorial_Deshabilitado(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, out := f.do(t, http.MethodGet, "/definition", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "HISTORY_DISABLED", out["code"])

	resp, _ = f.do(t, http.MethodGet, "/definition/7f0c7a55-3c1b-4c55-9d8a-000000000001", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSchema(t *testing.T) {
	f := newAPI(t, usecase.DefinitionOptions{})

	resp, out := f.do(t, http.MethodGet, "/schema/v2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "v2", out["version"])
	assert.NotEmpty(t, out["entities"])

	resp, out = f.do(t, http.MethodGet, "/schema/v9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out["code"])
}
