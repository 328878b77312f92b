package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/definition-generator/internal/domain/locale"
)

func TestResolve_CodigosSoportados(t *testing.T) {
	assert.Equal(t, "Russian", locale.Resolve("ru"))
	assert.Equal(t, "Spanish", locale.Resolve("es-ES"))
}

func TestResolve_PorDefectoEsIngles(t *testing.T) {
	for _, code := range []string{"", "en-US", "es", "ru-RU", "RU", "es-es", "xx", "  ru", "de-DE"} {
		assert.Equal(t, "English", locale.Resolve(code), "código %q", code)
	}
}

func TestResolve_EsTotal(t *testing.T) {
	allowed := map[string]bool{"Russian": true, "Spanish": true, "English": true}
	inputs := []string{"", "ru", "es-ES", "en", "\x00", "🙂", "zh-Hant-TW", "not a locale at all"}
	for _, in := range inputs {
		assert.True(t, allowed[locale.Resolve(in)], "Resolve(%q) fuera del conjunto permitido", in)
	}
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"es-ES", "ru"}, locale.Supported())
}
