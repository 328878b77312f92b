package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

type matrixRow struct {
	fieldType string
	dataTypes []string
	custom    bool
	report    bool
}

// Tabla de referencia de la matriz field_type ⇄ data_type.
var referenceMatrix = []matrixRow{
	{"currency", []string{"currency"}, true, true},
	{"input", []string{"string", "decimal", "integer"}, true, true},
	{"file", []string{"attachment"}, true, true},
	{"button", []string{"boolean"}, true, true},
	{"dictionary", []string{"dictionary"}, true, true},
	{"link", []string{"url"}, true, true},
	{"date", []string{"date_picker"}, true, true},
	{"time", []string{"time_picker"}, true, true},
	{"datetime", []string{"datetime_picker"}, true, true},
	{"image", []string{"attachment"}, false, true},
	{"checkbox", []string{"boolean"}, false, true},
	{"signature", []string{"attachment"}, false, true},
}

func TestAllows_ParesDeLaTabla(t *testing.T) {
	c, err := schema.Describe(schema.V1)
	require.NoError(t, err)

	for _, row := range referenceMatrix {
		for _, dt := range row.dataTypes {
			assert.Equal(t, row.custom, c.Allows(row.fieldType, dt, schema.ContextCustom),
				"(%s, %s) en custom", row.fieldType, dt)
			assert.Equal(t, row.report, c.Allows(row.fieldType, dt, schema.ContextReport),
				"(%s, %s) en report", row.fieldType, dt)
		}
	}
}

// Cualquier par fuera de la tabla se rechaza en ambos contextos.
func TestAllows_ParesFueraDeLaTabla(t *testing.T) {
	c, err := schema.Describe(schema.V1)
	require.NoError(t, err)

	allowed := map[[2]string]bool{}
	dataTypes := map[string]bool{"text": true, "number": true, "": true}
	fieldTypes := []string{"password", "", "INPUT"}
	for _, row := range referenceMatrix {
		fieldTypes = append(fieldTypes, row.fieldType)
		for _, dt := range row.dataTypes {
			allowed[[2]string{row.fieldType, dt}] = true
			dataTypes[dt] = true
		}
	}

	for _, ft := range fieldTypes {
		for dt := range dataTypes {
			if allowed[[2]string{ft, dt}] {
				continue
			}
			assert.False(t, c.Allows(ft, dt, schema.ContextCustom), "(%s, %s) custom", ft, dt)
			assert.False(t, c.Allows(ft, dt, schema.ContextReport), "(%s, %s) report", ft, dt)
		}
	}
	assert.False(t, c.Allows("input", "string", "other"), "contexto desconocido")
}

func TestFieldTypesFor(t *testing.T) {
	c, _ := schema.Describe(schema.V1)

	assert.Equal(t,
		[]string{"currency", "input", "file", "button", "dictionary", "link", "date", "time", "datetime"},
		c.FieldTypesFor(schema.ContextCustom))
	assert.Equal(t,
		[]string{"currency", "input", "file", "button", "dictionary", "link", "date", "time", "datetime", "image", "checkbox", "signature"},
		c.FieldTypesFor(schema.ContextReport))
}

func TestFieldType_FirmaRequiereCampoFirmado(t *testing.T) {
	c, _ := schema.Describe(schema.V1)

	sig, ok := c.FieldType("signature")
	require.True(t, ok)
	assert.True(t, sig.RequiresSignedField)

	file, ok := c.FieldType("file")
	require.True(t, ok)
	assert.False(t, file.RequiresSignedField)

	_, ok = c.FieldType("nope")
	assert.False(t, ok)
}
