// Package locale traduce el código de locale de la petición al nombre del idioma en el que
// el proveedor debe redactar la definición.
package locale

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage se usa para cualquier código no soportado, incluido el vacío.
const DefaultLanguage = "English"

// supported asocia el código exacto recibido con su tag BCP 47.
// La comparación es exacta: "es" o "ru-RU" caen en el idioma por defecto.
var supported = map[string]language.Tag{
	"ru":    language.Russian,
	"es-ES": language.MustParse("es-ES"),
}

// Resolve devuelve el nombre en inglés del idioma para el código dado.
// Es total: nunca falla y siempre devuelve "Russian", "Spanish" o "English".
func Resolve(code string) string {
	tag, ok := supported[code]
	if !ok {
		return DefaultLanguage
	}
	// Se nombra el idioma base: para es-ES CLDR devuelve "European Spanish".
	base, _ := tag.Base()
	name := display.English.Languages().Name(base)
	if name == "" {
		return DefaultLanguage
	}
	return name
}

// Supported lista los códigos con idioma propio, ordenados.
func Supported() []string {
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
