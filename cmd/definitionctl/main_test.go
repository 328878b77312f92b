package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/pkg/jwt"
)

// run ejecuta definitionctl con args y devuelve stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SCHEMA_VERSION", "v1")
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSchemaCmd(t *testing.T) {
	out, err := run(t, "schema", "v2")
	require.NoError(t, err)

	var c struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "v2", c.Version)

	_, err = run(t, "schema", "v9")
	assert.Error(t, err)
}

func TestPromptCmd(t *testing.T) {
	out, err := run(t, "prompt", "--locale", "ru", "--industry", "Plumbing")
	require.NoError(t, err)
	assert.Contains(t, out, "create a new definition in Russian relevant to the Plumbing industry")
	assert.True(t, strings.HasSuffix(out, "Output:\n"))

	_, err = run(t, "prompt", "--version", "v3")
	assert.Error(t, err, "v3 exige definición base")
}

func TestPromptCmd_ConBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(base, []byte(`{"templates":[]}`), 0o600))

	out, err := run(t, "prompt", "--version", "v3", "--base", base)
	require.NoError(t, err)
	assert.Contains(t, out, `{"templates":[]}`)
}

func TestValidateCmd(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"catalog_units":[]}`), 0o600))

	out, err := run(t, "validate", "--json", doc)
	require.Error(t, err)

	var res dto.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Violations)

	_, err = run(t, "validate", filepath.Join(t.TempDir(), "no-existe.json"))
	assert.ErrorContains(t, err, "leer")
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "definition-generator")

	out, err := run(t, "token", "--subject", "onboarding-job", "--ttl", "1h")
	require.NoError(t, err)

	sub, err := jwt.Parse("cli-secret", "definition-generator", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "onboarding-job", sub)

	_, err = run(t, "token")
	assert.Error(t, err, "subject obligatorio")
}

func TestHistoryCmd_SinBaseDeDatos(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "history")
	assert.Error(t, err)
}

func TestWriteHistoryCSV(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := writeHistoryCSV(&buf, []dto.GenerationDTO{{
		ID: "a1", CreatedAt: created, Provider: "anthropic", Locale: "ru", Language: "Russian",
		Industry: "Plumbing", SchemaVersion: "v1", Status: "succeeded", DurationSeconds: 12.5,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,created_at,provider,model,locale,language,industry,schema_version,status,duration_seconds,archive_key,error", lines[0])
	assert.Equal(t, "a1,2025-06-01T10:00:00Z,anthropic,,ru,Russian,Plumbing,v1,succeeded,12.5,,", lines[1])

	buf.Reset()
	require.NoError(t, writeHistoryCSV(&buf, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
