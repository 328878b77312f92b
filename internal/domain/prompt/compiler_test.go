package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/prompt"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

const baseDoc = `{"catalog_units":[{"id":"catalog_unit-0","name":"Hour","code":"h","type":"services","system":true}]}`

func TestCompile_Determinista(t *testing.T) {
	for _, v := range schema.Versions() {
		in := prompt.Input{Version: v, Language: "Spanish", Industry: "HVAC", BaseDefinition: baseDoc}
		first, err := prompt.Compile(in)
		require.NoError(t, err)
		second, err := prompt.Compile(in)
		require.NoError(t, err)
		assert.Equal(t, first, second, "versión %s", v)
	}
}

func TestCompile_IdiomaEIndustria(t *testing.T) {
	out, err := prompt.Compile(prompt.Input{Version: schema.V1, Language: "Russian", Industry: "Plumbing"})
	require.NoError(t, err)

	assert.Contains(t, out, "Russian")
	assert.Contains(t, out, "Plumbing")
	assert.Contains(t, out, "create a new definition in Russian relevant to the Plumbing industry.")
}

func TestCompile_IndustriaLiteral(t *testing.T) {
	out, err := prompt.Compile(prompt.Input{Version: schema.V2, Language: "English", Industry: "Pest & {weird} control"})
	require.NoError(t, err)
	assert.Contains(t, out, "relevant to the Pest & {weird} control industry.")
}

func TestCompile_VersionDesconocida(t *testing.T) {
	_, err := prompt.Compile(prompt.Input{Version: "v0", Language: "English", Industry: "General"})
	assert.ErrorIs(t, err, domain.ErrUnknownSchemaVersion)
}

func TestCompile_DefinicionBase(t *testing.T) {
	t.Run("opcional en v1 y v2", func(t *testing.T) {
		for _, v := range []schema.Version{schema.V1, schema.V2} {
			without, err := prompt.Compile(prompt.Input{Version: v, Language: "English", Industry: "General"})
			require.NoError(t, err)
			assert.NotContains(t, without, prompt.BaseHeader)

			with, err := prompt.Compile(prompt.Input{Version: v, Language: "English", Industry: "General", BaseDefinition: baseDoc})
			require.NoError(t, err)
			assert.Contains(t, with, prompt.BaseHeader+baseDoc)
			assert.NotContains(t, with, prompt.PrimaryExampleHeader)
		}
	})

	t.Run("obligatoria en v3", func(t *testing.T) {
		_, err := prompt.Compile(prompt.Input{Version: schema.V3, Language: "English", Industry: "General"})
		assert.ErrorIs(t, err, domain.ErrMissingBaseDefinition)

		_, err = prompt.Compile(prompt.Input{Version: schema.V3, Language: "English", Industry: "General", BaseDefinition: " \n\t"})
		assert.ErrorIs(t, err, domain.ErrMissingBaseDefinition)

		out, err := prompt.Compile(prompt.Input{Version: schema.V3, Language: "English", Industry: "General", BaseDefinition: baseDoc})
		require.NoError(t, err)
		assert.Contains(t, out, prompt.PrimaryExampleHeader+baseDoc)
		assert.NotContains(t, out, prompt.BaseHeader)
	})

	t.Run("base en blanco se ignora en v1", func(t *testing.T) {
		out, err := prompt.Compile(prompt.Input{Version: schema.V1, Language: "English", Industry: "General", BaseDefinition: "   "})
		require.NoError(t, err)
		assert.NotContains(t, out, prompt.BaseHeader)
	})
}

func TestCompile_ReglasDelContrato(t *testing.T) {
	out, err := prompt.Compile(prompt.Input{Version: schema.V1, Language: "English", Industry: "General"})
	require.NoError(t, err)

	c, err := schema.Describe(schema.V1)
	require.NoError(t, err)

	for _, e := range c.Entities {
		assert.Contains(t, out, string(e.Kind)+" "+e.Purpose+". Properties: ")
	}
	for _, rule := range c.FieldTypes {
		assert.Contains(t, out, `field_type "`+rule.FieldType+`"`)
	}
	assert.Contains(t, out, `field_type "signature": data_type "attachment" (report_fields only, requires signed_field)`)
	assert.Contains(t, out, `field_type "input": data_type "string" or "decimal" or "integer" (custom_fields and report_fields)`)

	assert.Contains(t, out, "ids run from custom_field-0 to custom_field-34")
	assert.Contains(t, out, "custom_field_type-N with the same N")
	assert.Contains(t, out, "category-0, category-1")

	assert.Contains(t, out, "exactly 5 templates")
	assert.Contains(t, out, `exactly 2 catalog_units with type "products"`)
	assert.Contains(t, out, "at least 5 report_fields in each template")
	assert.Contains(t, out, `report_fields.signed_field must be an id from custom_fields of the same template, only when field_type is "signature"`)

	for _, rule := range c.OutputRules {
		assert.Contains(t, out, "- "+rule)
	}
	assert.True(t, strings.HasSuffix(out, "Output:\n"))
}

func TestCompile_CantidadesV2(t *testing.T) {
	out, err := prompt.Compile(prompt.Input{Version: schema.V2, Language: "English", Industry: "General"})
	require.NoError(t, err)

	assert.Contains(t, out, "exactly 4 products")
	assert.Contains(t, out, "at least 3 custom_fields in each template")
	assert.Contains(t, out, "ids run from custom_field-0 to custom_field-44")
}

func TestCompile_EjemploConIDsDelPlan(t *testing.T) {
	out, err := prompt.Compile(prompt.Input{Version: schema.V1, Language: "English", Industry: "General"})
	require.NoError(t, err)

	assert.Contains(t, out, `"id":"custom_field-4","type":"custom_field_type-4","name":"Customer signature"`)
	assert.Contains(t, out, `"signed_field":"custom_field-0"`)
	assert.Contains(t, out, "Example: `templates: [")
}
