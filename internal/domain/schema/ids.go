package schema

import "strconv"

// SequenceID construye el ID n-ésimo de una secuencia: SequenceID("category", 2) = "category-2".
func SequenceID(prefix string, n int) string {
	return prefix + "-" + strconv.Itoa(n)
}

// FieldCounts cantidad de campos de una plantilla.
type FieldCounts struct {
	Custom int
	Report int
}

// FieldID par id/type asignado a un campo; comparten el mismo número.
type FieldID struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// TemplateFieldIDs IDs asignados a los campos de una plantilla.
type TemplateFieldIDs struct {
	Custom []FieldID
	Report []FieldID
}

// PlanFieldIDs asigna IDs a los campos de las plantillas en orden de documento.
// Un único contador recorre, plantilla por plantilla, primero los custom_fields y luego los
// report_fields; nunca se reinicia entre plantillas.
func PlanFieldIDs(templates []FieldCounts) []TemplateFieldIDs {
	plan := make([]TemplateFieldIDs, len(templates))
	next := 0
	take := func(n int) []FieldID {
		if n <= 0 {
			return nil
		}
		ids := make([]FieldID, n)
		for i := range ids {
			ids[i] = FieldID{
				ID:   SequenceID(FieldIDPrefix, next),
				Type: SequenceID(FieldTypePrefix, next),
			}
			next++
		}
		return ids
	}
	for i, t := range templates {
		plan[i].Custom = take(t.Custom)
		plan[i].Report = take(t.Report)
	}
	return plan
}

// MinimumFieldCounts devuelve, para cada plantilla exigida, el mínimo de campos custom y
// de reporte que la versión pide.
func (c Contract) MinimumFieldCounts() []FieldCounts {
	var templates, custom, report int
	for _, card := range c.Cardinalities {
		switch card.Kind {
		case KindTemplates:
			templates += card.Count
		case KindCustomFields:
			custom = card.Count
		case KindReportFields:
			report = card.Count
		}
	}
	out := make([]FieldCounts, templates)
	for i := range out {
		out[i] = FieldCounts{Custom: custom, Report: report}
	}
	return out
}
