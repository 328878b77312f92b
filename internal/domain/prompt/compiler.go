// Package prompt convierte el contrato de una versión de esquema en la instrucción de texto que
// recibe el proveedor LLM. La salida depende solo de la entrada.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

// BaseHeader precede a la definición base en las versiones donde es opcional.
const BaseHeader = "Use following definition as a base for your output:\n"

// PrimaryExampleHeader precede a la definición base en las versiones que la exigen.
const PrimaryExampleHeader = "Primary example. The following definition is the reference for structure, naming style and level of detail. " +
	"Create the new definition by following it closely while satisfying every rule above:\n"

const intro = "We use definitions to create new tenants with relevant examples which depend on tenants industry and locale. " +
	"Description of definition structure:\n"

// Input parámetros de compilación. Language es el nombre del idioma, no el código de locale.
// Un BaseDefinition vacío o con solo espacios cuenta como ausente.
type Input struct {
	Version        schema.Version
	Language       string
	Industry       string
	BaseDefinition string
}

// Compile construye la instrucción para la versión pedida.
func Compile(in Input) (string, error) {
	c, err := schema.Describe(in.Version)
	if err != nil {
		return "", err
	}
	hasBase := strings.TrimSpace(in.BaseDefinition) != ""
	if c.RequiresBaseDefinition() && !hasBase {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingBaseDefinition, c.Version)
	}

	r := &renderer{contract: c}
	r.entities()
	r.fieldMatrix()
	r.idRules()
	r.crossRefs()
	if hasBase {
		if c.RequiresBaseDefinition() {
			r.b.WriteString("\n" + PrimaryExampleHeader + in.BaseDefinition + "\n")
		} else {
			r.b.WriteString("\n" + BaseHeader + in.BaseDefinition + "\n")
		}
	}
	fmt.Fprintf(&r.b, "\nBased on example and restrictions create a new definition in %s relevant to the %s industry.\n",
		in.Language, in.Industry)
	r.directives()
	r.b.WriteString("\nOutput:\n")
	return r.b.String(), nil
}

type renderer struct {
	contract schema.Contract
	b        strings.Builder
}

// ── Entidades ────────────────────────────────────────────────────────────────

func (r *renderer) entities() {
	example := exampleDefinition()
	r.b.WriteString(intro)
	for _, e := range r.contract.Entities {
		if e.Parent != "" {
			continue
		}
		fmt.Fprintf(&r.b, "- %s %s. Properties: %s.\n", e.Kind, e.Purpose, describeProperties(e.Properties))
		for _, child := range r.contract.Entities {
			if child.Parent == e.Kind {
				fmt.Fprintf(&r.b, "    %s %s. Properties: %s.\n", child.Kind, child.Purpose, describeProperties(child.Properties))
			}
		}
		if js, ok := exampleJSON(example, e.Kind); ok {
			fmt.Fprintf(&r.b, "    Example: `%s: %s`\n", e.Kind, js)
		}
	}
}

func describeProperties(props []schema.Property) string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = describeProperty(p)
	}
	return strings.Join(out, ", ")
}

func describeProperty(p schema.Property) string {
	typ := string(p.Type)
	if p.Ref != "" {
		typ += " referencing " + string(p.Ref) + " id"
	}
	details := []string{typ}
	if len(p.Enum) > 0 {
		details = append(details, "one of "+quoteList(p.Enum, ", "))
	}
	if p.Const != "" {
		details = append(details, "should be "+p.Const)
	}
	if p.Default != "" {
		details = append(details, p.Default+" by default")
	}
	if p.Description != "" {
		details = append(details, p.Description)
	}
	if !p.Required && p.Default == "" {
		details = append(details, "optional")
	}
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(details, ", "))
}

func quoteList(values []string, sep string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, sep)
}

// ── Matriz field_type ⇄ data_type ────────────────────────────────────────────

func (r *renderer) fieldMatrix() {
	r.b.WriteString("\nAllowed field_type and data_type pairs (any other pair is invalid):\n")
	for _, rule := range r.contract.FieldTypes {
		var where string
		switch {
		case rule.Custom && rule.Report:
			where = "custom_fields and report_fields"
		case rule.Report:
			where = "report_fields only"
		default:
			where = "custom_fields only"
		}
		fmt.Fprintf(&r.b, "- field_type %q: data_type %s (%s", rule.FieldType, quoteList(rule.DataTypes, " or "), where)
		if rule.RequiresSignedField {
			r.b.WriteString(", requires signed_field")
		}
		r.b.WriteString(")\n")
	}
}

// ── Numeración de IDs ────────────────────────────────────────────────────────

func (r *renderer) idRules() {
	r.b.WriteString("\nID rules (all sequences start at 0 and follow document order):\n")
	for _, rule := range r.contract.IDRules {
		kinds := make([]string, len(rule.Kinds))
		for i, k := range rule.Kinds {
			kinds[i] = string(k)
		}
		if !rule.Shared {
			fmt.Fprintf(&r.b, "- %s ids are %s, %s, ...\n",
				strings.Join(kinds, ", "), schema.SequenceID(rule.Prefix, 0), schema.SequenceID(rule.Prefix, 1))
			continue
		}
		fmt.Fprintf(&r.b, "- %s share one %s-N counter across all templates: within each template custom_fields come first, "+
			"then report_fields, and the counter continues into the next template without restarting. "+
			"Each field's type is %s-N with the same N as its id.",
			strings.Join(kinds, " and "), rule.Prefix, rule.TypePrefix)
		if first, last, ok := r.minimumFieldRange(); ok {
			fmt.Fprintf(&r.b, " With the minimum field counts ids run from %s to %s.", first, last)
		}
		r.b.WriteString("\n")
	}
}

func (r *renderer) minimumFieldRange() (string, string, bool) {
	var ids []schema.FieldID
	for _, tpl := range schema.PlanFieldIDs(r.contract.MinimumFieldCounts()) {
		ids = append(ids, tpl.Custom...)
		ids = append(ids, tpl.Report...)
	}
	if len(ids) == 0 {
		return "", "", false
	}
	return ids[0].ID, ids[len(ids)-1].ID, true
}

// ── Referencias cruzadas ─────────────────────────────────────────────────────

func (r *renderer) crossRefs() {
	r.b.WriteString("\nReferences:\n")
	for _, ref := range r.contract.CrossRefs {
		fmt.Fprintf(&r.b, "- %s.%s must be an id from %s", ref.From, ref.Property, ref.To)
		if ref.Scope == schema.ScopeTemplate {
			r.b.WriteString(" of the same template")
		} else if ref.From == schema.KindProducts || ref.From == schema.KindServices {
			fmt.Fprintf(&r.b, " with type %q", ref.From)
		}
		if ref.When != "" {
			fmt.Fprintf(&r.b, ", only when field_type is %q", ref.When)
		}
		if ref.FieldType != "" {
			fmt.Fprintf(&r.b, "; the referenced field must have field_type %q", ref.FieldType)
		}
		r.b.WriteString("\n")
	}
}

// ── Cantidades y directivas de salida ────────────────────────────────────────

func (r *renderer) directives() {
	rules := r.contract.OutputRules
	if len(rules) > 0 {
		fmt.Fprintf(&r.b, "- %s\n", rules[0])
	}
	r.b.WriteString("- Generate:\n")
	for _, card := range r.contract.Cardinalities {
		fmt.Fprintf(&r.b, "    - %s\n", describeCardinality(card))
	}
	for _, rule := range rules[min(1, len(rules)):] {
		fmt.Fprintf(&r.b, "- %s\n", rule)
	}
}

func describeCardinality(card schema.Cardinality) string {
	amount := fmt.Sprintf("exactly %d", card.Count)
	if card.AtLeast {
		amount = fmt.Sprintf("at least %d", card.Count)
	}
	s := amount + " " + string(card.Kind)
	if card.Type != "" {
		s += fmt.Sprintf(" with type %q", card.Type)
	}
	if card.Scope == schema.ScopeTemplate {
		s += " in each template"
	}
	return s
}
