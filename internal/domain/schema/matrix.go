package schema

// FieldContext distingue campos custom (antes del trabajo) de campos de reporte.
type FieldContext string

const (
	ContextCustom FieldContext = "custom"
	ContextReport FieldContext = "report"
)

// FieldType busca la fila de la matriz para un field_type.
func (c Contract) FieldType(fieldType string) (FieldTypeRule, bool) {
	for _, r := range c.FieldTypes {
		if r.FieldType == fieldType {
			return r, true
		}
	}
	return FieldTypeRule{}, false
}

// Allows indica si el par (field_type, data_type) es válido en el contexto dado.
// Cualquier par fuera de la matriz se rechaza.
func (c Contract) Allows(fieldType, dataType string, ctx FieldContext) bool {
	rule, ok := c.FieldType(fieldType)
	if !ok || !rule.AppliesTo(ctx) {
		return false
	}
	for _, dt := range rule.DataTypes {
		if dt == dataType {
			return true
		}
	}
	return false
}

// FieldTypesFor lista los field_type permitidos en el contexto, en orden de la matriz.
func (c Contract) FieldTypesFor(ctx FieldContext) []string {
	var out []string
	for _, r := range c.FieldTypes {
		if r.AppliesTo(ctx) {
			out = append(out, r.FieldType)
		}
	}
	return out
}

// AppliesTo indica si la fila se puede usar en el contexto.
func (r FieldTypeRule) AppliesTo(ctx FieldContext) bool {
	switch ctx {
	case ContextCustom:
		return r.Custom
	case ContextReport:
		return r.Report
	default:
		return false
	}
}
