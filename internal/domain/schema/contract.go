// Package schema describe, como datos, la estructura que debe cumplir una definición de tenant:
// entidades, cardinalidades, numeración de IDs, matriz field_type/data_type y referencias cruzadas.
// El contrato está parametrizado por versión; el texto del prompt se genera a partir de él.
package schema

import (
	"fmt"
	"sort"

	"github.com/jhoicas/definition-generator/internal/domain"
)

// Version identifica una variante del contrato.
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
	V3 Version = "v3"
)

// BaseDefinitionMode indica si la versión necesita una definición base como semilla.
type BaseDefinitionMode string

const (
	BaseOptional BaseDefinitionMode = "optional"
	BaseRequired BaseDefinitionMode = "required"
)

// Kind es la clave JSON de cada colección del documento.
type Kind string

const (
	KindCatalogUnits Kind = "catalog_units"
	KindCategories   Kind = "categories"
	KindProducts     Kind = "products"
	KindServices     Kind = "services"
	KindTemplates    Kind = "templates"
	KindCustomFields Kind = "custom_fields"
	KindReportFields Kind = "report_fields"
)

// PropertyType tipo JSON de una propiedad.
type PropertyType string

const (
	TypeString     PropertyType = "string"
	TypeBoolean    PropertyType = "boolean"
	TypeInteger    PropertyType = "integer"
	TypeStringList PropertyType = "string[]"
	TypeObjectList PropertyType = "object[]"
)

// Scope alcance de una regla: todo el documento o una misma plantilla.
type Scope string

const (
	ScopeDocument Scope = "document"
	ScopeTemplate Scope = "template"
)

// Property describe una propiedad de una entidad.
// Const guarda el literal JSON que la propiedad debe tener siempre; Default el valor por omisión.
type Property struct {
	Name        string       `json:"name"`
	Type        PropertyType `json:"type"`
	Required    bool         `json:"required"`
	Description string       `json:"description,omitempty"`
	Enum        []string     `json:"enum,omitempty"`
	Const       string       `json:"const,omitempty"`
	Default     string       `json:"default,omitempty"`
	Ref         Kind         `json:"ref,omitempty"`
}

// Entity describe una colección del documento.
type Entity struct {
	Kind       Kind       `json:"kind"`
	IDPrefix   string     `json:"id_prefix"`
	Parent     Kind       `json:"parent,omitempty"` // colecciones anidadas dentro de otra entidad
	Purpose    string     `json:"purpose"`
	Properties []Property `json:"properties"`
}

// Property busca una propiedad por nombre.
func (e Entity) Property(name string) (Property, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Cardinality número de elementos exigido para una colección, opcionalmente filtrada por "type".
// Con AtLeast la cuenta es un mínimo; con ScopeTemplate se aplica a cada plantilla.
type Cardinality struct {
	Kind    Kind   `json:"kind"`
	Type    string `json:"type,omitempty"`
	Count   int    `json:"count"`
	AtLeast bool   `json:"at_least"`
	Scope   Scope  `json:"scope"`
}

// FieldTypeRule fila de la matriz field_type ⇄ data_type.
type FieldTypeRule struct {
	FieldType           string   `json:"field_type"`
	DataTypes           []string `json:"data_types"`
	Custom              bool     `json:"custom"`
	Report              bool     `json:"report"`
	RequiresSignedField bool     `json:"requires_signed_field"`
}

// IDRule numeración secuencial desde cero. Si Kinds tiene más de una colección, todas
// comparten el mismo contador; con Shared el contador recorre todas las plantillas en orden.
type IDRule struct {
	Prefix     string `json:"prefix"`
	Kinds      []Kind `json:"kinds"`
	TypePrefix string `json:"type_prefix,omitempty"`
	Shared     bool   `json:"shared"`
}

// CrossRef referencia de una propiedad a los IDs de otra colección.
type CrossRef struct {
	From      Kind   `json:"from"`
	Property  string `json:"property"`
	To        Kind   `json:"to"`
	Scope     Scope  `json:"scope"`
	When      string `json:"when,omitempty"`       // field_type del origen en el que aplica
	FieldType string `json:"field_type,omitempty"` // field_type exigido en el destino
}

// Contract descripción estructurada y completa de una versión.
type Contract struct {
	Version        Version            `json:"version"`
	BaseDefinition BaseDefinitionMode `json:"base_definition"`
	Entities       []Entity           `json:"entities"`
	Cardinalities  []Cardinality      `json:"cardinalities"`
	FieldTypes     []FieldTypeRule    `json:"field_types"`
	IDRules        []IDRule           `json:"id_rules"`
	CrossRefs      []CrossRef         `json:"cross_refs"`
	OutputRules    []string           `json:"output_rules"`
}

// Entity busca una entidad por colección.
func (c Contract) Entity(kind Kind) (Entity, bool) {
	for _, e := range c.Entities {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entity{}, false
}

// IDRule devuelve la regla de numeración que cubre la colección.
func (c Contract) IDRule(kind Kind) (IDRule, bool) {
	for _, r := range c.IDRules {
		for _, k := range r.Kinds {
			if k == kind {
				return r, true
			}
		}
	}
	return IDRule{}, false
}

// CardinalitiesFor devuelve las reglas de cantidad de una colección.
func (c Contract) CardinalitiesFor(kind Kind) []Cardinality {
	var out []Cardinality
	for _, card := range c.Cardinalities {
		if card.Kind == kind {
			out = append(out, card)
		}
	}
	return out
}

// RequiresBaseDefinition indica si Compile debe rechazar peticiones sin definición base.
func (c Contract) RequiresBaseDefinition() bool {
	return c.BaseDefinition == BaseRequired
}

// Describe devuelve el contrato de la versión. Cada llamada construye un valor nuevo,
// así que el llamador puede modificarlo sin afectar a otros.
func Describe(version Version) (Contract, error) {
	build, ok := builders[version]
	if !ok {
		return Contract{}, fmt.Errorf("%w: %q", domain.ErrUnknownSchemaVersion, version)
	}
	return build(), nil
}

// ParseVersion valida un texto de versión ("v1", "v2", ...).
func ParseVersion(s string) (Version, error) {
	v := Version(s)
	if _, ok := builders[v]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSchemaVersion, s)
	}
	return v, nil
}

// Versions lista las versiones conocidas en orden.
func Versions() []Version {
	out := make([]Version, 0, len(builders))
	for v := range builders {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
