package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/definition-generator/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/definition-generator/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAPIToken  = "static-token-for-tests"
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "definition-generator-test"
)

func testAuthConfig() apphttp.AuthConfig {
	return apphttp.AuthConfig{APIToken: testAPIToken, JWTSecret: testJWTSecret, JWTIssuer: testIssuer}
}

// buildAuthApp aplicación mínima con AuthMiddleware y un handler que devuelve el sujeto.
func buildAuthApp(cfg apphttp.AuthConfig) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"subject": apphttp.GetSubject(c)})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	out := map[string]string{}
	_ = json.Unmarshal(body, &out)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinCabecera(t *testing.T) {
	resp, body := doGet(t, buildAuthApp(testAuthConfig()), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token is missing!", body["error"])
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuth_FormatoIncorrecto(t *testing.T) {
	app := buildAuthApp(testAuthConfig())
	for _, header := range []string{"Basic abc", testAPIToken, "Bearer ", "bearer " + testAPIToken} {
		resp, _ := doGet(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "cabecera %q", header)
	}
}

func TestAuth_TokenEstatico(t *testing.T) {
	app := buildAuthApp(testAuthConfig())

	resp, body := doGet(t, app, "Bearer "+testAPIToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "api-token", body["subject"])

	resp, body = doGet(t, app, "Bearer "+testAPIToken+"x")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token!", body["error"])
}

func TestAuth_JWTDeServicio(t *testing.T) {
	app := buildAuthApp(testAuthConfig())
	token, err := pkgjwt.Generate(testJWTSecret, "onboarding-job", testIssuer, time.Hour)
	require.NoError(t, err)

	resp, body := doGet(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "onboarding-job", body["subject"])

	other, err := pkgjwt.Generate("otro-secreto", "onboarding-job", testIssuer, time.Hour)
	require.NoError(t, err)
	resp, _ = doGet(t, app, "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_JWTDeshabilitadoSinSecreto(t *testing.T) {
	token, err := pkgjwt.Generate(testJWTSecret, "svc", testIssuer, time.Hour)
	require.NoError(t, err)

	resp, _ := doGet(t, buildAuthApp(apphttp.AuthConfig{APIToken: testAPIToken}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_SinTokenConfiguradoRechazaTodo(t *testing.T) {
	resp, _ := doGet(t, buildAuthApp(apphttp.AuthConfig{}), "Bearer cualquier-cosa")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
