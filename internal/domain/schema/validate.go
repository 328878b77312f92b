package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/definition-generator/internal/domain/entity"
)

// Reglas que puede reportar Validate.
const (
	RuleJSON            = "json"
	RuleUnknownProperty = "unknown_property"
	RuleRequired        = "required"
	RuleCardinality     = "cardinality"
	RuleIDSequence      = "id_sequence"
	RuleEnum            = "enum"
	RuleFixedValue      = "fixed_value"
	RuleFieldMatrix     = "field_matrix"
	RuleCrossRef        = "cross_ref"
	RuleCurrency        = "currency"
	RuleDecimal         = "decimal"
)

// Violation incumplimiento del contrato encontrado en un documento.
type Violation struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s [%s]: %s", v.Path, v.Rule, v.Message)
}

// Validate comprueba un documento JSON contra el contrato. Devuelve nil si lo cumple.
// No forma parte del flujo de generación salvo que se active explícitamente.
func Validate(c Contract, raw []byte) []Violation {
	def, v := decodeDefinition(raw)
	if v != nil {
		return []Violation{*v}
	}
	return ValidateDefinition(c, def)
}

// ValidateDefinition igual que Validate pero sobre un documento ya decodificado.
func ValidateDefinition(c Contract, def *entity.Definition) []Violation {
	val := &validator{contract: c, def: def}
	val.checkRequired()
	val.checkCardinalities()
	val.checkIDs()
	val.checkUnitsAndCategories()
	val.checkItems(KindProducts, def.Products, TypeProducts)
	val.checkItems(KindServices, def.Services, TypeServices)
	val.checkTemplates()
	return val.out
}

func decodeDefinition(raw []byte) (*entity.Definition, *Violation) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var def entity.Definition
	if err := dec.Decode(&def); err != nil {
		rule := RuleJSON
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			rule = RuleUnknownProperty
		}
		return nil, &Violation{Path: "$", Rule: rule, Message: err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &Violation{Path: "$", Rule: RuleJSON, Message: "contenido adicional después del documento"}
	}
	return &def, nil
}

type validator struct {
	contract Contract
	def      *entity.Definition
	out      []Violation
}

func (v *validator) add(path, rule, format string, args ...any) {
	v.out = append(v.out, Violation{Path: path, Rule: rule, Message: fmt.Sprintf(format, args...)})
}

func path(kind Kind, i int, prop string) string {
	if prop == "" {
		return fmt.Sprintf("%s[%d]", kind, i)
	}
	return fmt.Sprintf("%s[%d].%s", kind, i, prop)
}

func fieldPath(t int, kind Kind, i int, prop string) string {
	return fmt.Sprintf("templates[%d].%s", t, path(kind, i, prop))
}

// ── Propiedades obligatorias ─────────────────────────────────────────────────

func (v *validator) checkRequired() {
	req := func(p, value string) {
		if strings.TrimSpace(value) == "" {
			v.add(p, RuleRequired, "propiedad obligatoria vacía o ausente")
		}
	}
	for i, u := range v.def.CatalogUnits {
		req(path(KindCatalogUnits, i, "id"), u.ID)
		req(path(KindCatalogUnits, i, "name"), u.Name)
		req(path(KindCatalogUnits, i, "code"), u.Code)
	}
	for i, c := range v.def.Categories {
		req(path(KindCategories, i, "id"), c.ID)
		req(path(KindCategories, i, "name"), c.Name)
	}
	items := func(kind Kind, list []entity.Item) {
		for i, it := range list {
			req(path(kind, i, "id"), it.ID)
			req(path(kind, i, "name"), it.Name)
			req(path(kind, i, "unit"), it.Unit)
		}
	}
	items(KindProducts, v.def.Products)
	items(KindServices, v.def.Services)
	for t, tpl := range v.def.Templates {
		req(path(KindTemplates, t, "id"), tpl.ID)
		req(path(KindTemplates, t, "name"), tpl.Name)
		for i, f := range tpl.CustomFields {
			req(fieldPath(t, KindCustomFields, i, "name"), f.Name)
		}
		for i, f := range tpl.ReportFields {
			req(fieldPath(t, KindReportFields, i, "name"), f.Name)
		}
	}
}

// ── Cardinalidades ───────────────────────────────────────────────────────────

func (v *validator) checkCardinalities() {
	for _, card := range v.contract.Cardinalities {
		if card.Scope == ScopeTemplate {
			for t, tpl := range v.def.Templates {
				n := len(tpl.CustomFields)
				if card.Kind == KindReportFields {
					n = len(tpl.ReportFields)
				}
				v.compareCount(fmt.Sprintf("templates[%d].%s", t, card.Kind), card, n)
			}
			continue
		}
		p := string(card.Kind)
		if card.Type != "" {
			p = fmt.Sprintf("%s[type=%s]", card.Kind, card.Type)
		}
		v.compareCount(p, card, v.countDocument(card))
	}
}

func (v *validator) countDocument(card Cardinality) int {
	n := 0
	switch card.Kind {
	case KindCatalogUnits:
		for _, u := range v.def.CatalogUnits {
			if card.Type == "" || u.Type == card.Type {
				n++
			}
		}
	case KindCategories:
		for _, c := range v.def.Categories {
			if card.Type == "" || c.Type == card.Type {
				n++
			}
		}
	case KindProducts:
		n = len(v.def.Products)
	case KindServices:
		n = len(v.def.Services)
	case KindTemplates:
		n = len(v.def.Templates)
	}
	return n
}

func (v *validator) compareCount(p string, card Cardinality, got int) {
	if card.AtLeast {
		if got < card.Count {
			v.add(p, RuleCardinality, "se esperaban al menos %d, hay %d", card.Count, got)
		}
		return
	}
	if got != card.Count {
		v.add(p, RuleCardinality, "se esperaban exactamente %d, hay %d", card.Count, got)
	}
}

// ── Numeración de IDs ────────────────────────────────────────────────────────

func (v *validator) checkIDs() {
	for _, rule := range v.contract.IDRules {
		if rule.Shared {
			v.checkSharedFieldIDs(rule)
			continue
		}
		for _, kind := range rule.Kinds {
			ids := v.documentIDs(kind)
			for i, id := range ids {
				if want := SequenceID(rule.Prefix, i); id != want {
					v.add(path(kind, i, "id"), RuleIDSequence, "se esperaba %q, hay %q", want, id)
				}
			}
		}
	}
}

func (v *validator) documentIDs(kind Kind) []string {
	var ids []string
	switch kind {
	case KindCatalogUnits:
		for _, u := range v.def.CatalogUnits {
			ids = append(ids, u.ID)
		}
	case KindCategories:
		for _, c := range v.def.Categories {
			ids = append(ids, c.ID)
		}
	case KindProducts:
		for _, p := range v.def.Products {
			ids = append(ids, p.ID)
		}
	case KindServices:
		for _, s := range v.def.Services {
			ids = append(ids, s.ID)
		}
	case KindTemplates:
		for _, t := range v.def.Templates {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// checkSharedFieldIDs recorre los campos en orden de documento contra el plan del contador global.
func (v *validator) checkSharedFieldIDs(rule IDRule) {
	counts := make([]FieldCounts, len(v.def.Templates))
	for t, tpl := range v.def.Templates {
		counts[t] = FieldCounts{Custom: len(tpl.CustomFields), Report: len(tpl.ReportFields)}
	}
	plan := PlanFieldIDs(counts)
	check := func(p string, want FieldID, id, typ string) {
		if id != want.ID {
			v.add(p+".id", RuleIDSequence, "se esperaba %q (contador global de %s), hay %q", want.ID, rule.Prefix, id)
		}
		if typ != want.Type {
			v.add(p+".type", RuleIDSequence, "se esperaba %q, hay %q", want.Type, typ)
		}
	}
	for t, tpl := range v.def.Templates {
		for i, f := range tpl.CustomFields {
			check(fieldPath(t, KindCustomFields, i, ""), plan[t].Custom[i], f.ID, f.Type)
		}
		for i, f := range tpl.ReportFields {
			check(fieldPath(t, KindReportFields, i, ""), plan[t].Report[i], f.ID, f.Type)
		}
	}
}

// ── Unidades y categorías ────────────────────────────────────────────────────

func (v *validator) checkUnitsAndCategories() {
	for i, u := range v.def.CatalogUnits {
		v.checkEnum(KindCatalogUnits, i, "type", u.Type)
		if u.System != nil && u.Type != TypeServices {
			v.add(path(KindCatalogUnits, i, "system"), RuleEnum, "system solo aplica a unidades de tipo %q", TypeServices)
		}
	}
	for i, c := range v.def.Categories {
		v.checkEnum(KindCategories, i, "type", c.Type)
	}
}

func (v *validator) checkEnum(kind Kind, i int, prop, value string) {
	e, ok := v.contract.Entity(kind)
	if !ok {
		return
	}
	p, ok := e.Property(prop)
	if !ok || len(p.Enum) == 0 {
		return
	}
	for _, allowed := range p.Enum {
		if value == allowed {
			return
		}
	}
	v.add(path(kind, i, prop), RuleEnum, "%q no es uno de %s", value, strings.Join(p.Enum, ", "))
}

// ── Productos y servicios ────────────────────────────────────────────────────

func (v *validator) checkItems(kind Kind, items []entity.Item, itemType string) {
	unitTypes := make(map[string]string, len(v.def.CatalogUnits))
	for _, u := range v.def.CatalogUnits {
		unitTypes[u.ID] = u.Type
	}
	categoryTypes := make(map[string]string, len(v.def.Categories))
	for _, c := range v.def.Categories {
		categoryTypes[c.ID] = c.Type
	}
	targets := map[Kind]map[string]string{
		KindCatalogUnits: unitTypes,
		KindCategories:   categoryTypes,
	}

	for i, it := range items {
		v.checkCurrency(path(kind, i, "currency"), it.Currency)
		if it.PriceDefault != nil {
			if _, err := decimal.NewFromString(*it.PriceDefault); err != nil {
				v.add(path(kind, i, "price_default"), RuleDecimal, "%q no es un decimal válido", *it.PriceDefault)
			}
		}
		if kind == KindServices && it.Archived != nil && *it.Archived {
			v.add(path(kind, i, "archived"), RuleFixedValue, "los servicios nuevos no deben estar archivados")
		}

		for _, ref := range v.contract.CrossRefs {
			if ref.From != kind {
				continue
			}
			var value *string
			switch ref.Property {
			case "unit":
				value = &it.Unit
			case "category":
				value = it.Category
			}
			if value == nil || *value == "" {
				continue
			}
			targetType, ok := targets[ref.To][*value]
			if !ok {
				v.add(path(kind, i, ref.Property), RuleCrossRef, "%q no existe en %s", *value, ref.To)
				continue
			}
			if targetType != itemType {
				v.add(path(kind, i, ref.Property), RuleCrossRef, "%q es de tipo %q, se esperaba %q", *value, targetType, itemType)
			}
		}
	}
}

func (v *validator) checkCurrency(p, code string) {
	if code == "" {
		v.add(p, RuleRequired, "propiedad obligatoria vacía o ausente")
		return
	}
	if code != strings.ToLower(code) {
		v.add(p, RuleCurrency, "%q debe estar en minúsculas", code)
		return
	}
	if _, err := currency.ParseISO(strings.ToUpper(code)); err != nil {
		v.add(p, RuleCurrency, "%q no es un código ISO-4217", code)
	}
}

// ── Plantillas y campos ──────────────────────────────────────────────────────

func (v *validator) checkTemplates() {
	tplEntity, _ := v.contract.Entity(KindTemplates)
	for t, tpl := range v.def.Templates {
		jobType := tpl.JobType
		if jobType == "" {
			// Los ejemplos históricos usan "type" en lugar de "job_type".
			jobType = tpl.Type
		}
		v.checkConst(tplEntity, t, "job_type", jobType)
		v.checkConst(tplEntity, t, "possible_resolutions", tpl.PossibleResolutions)
		v.checkConst(tplEntity, t, "can_be_used_on_mobile", tpl.CanBeUsedOnMobile)
		if tpl.ScheduledDurationMin <= 0 {
			v.add(path(KindTemplates, t, "scheduled_duration_min"), RuleRequired, "debe ser un entero positivo")
		}

		customIDs := make(map[string]string, len(tpl.CustomFields))
		for i, f := range tpl.CustomFields {
			if !v.contract.Allows(f.FieldType, f.DataType, ContextCustom) {
				v.add(fieldPath(t, KindCustomFields, i, "field_type"), RuleFieldMatrix,
					"par (%q, %q) no permitido en custom_fields", f.FieldType, f.DataType)
			}
			customIDs[f.ID] = f.FieldType
		}
		for i, f := range tpl.ReportFields {
			if !v.contract.Allows(f.FieldType, f.DataType, ContextReport) {
				v.add(fieldPath(t, KindReportFields, i, "field_type"), RuleFieldMatrix,
					"par (%q, %q) no permitido en report_fields", f.FieldType, f.DataType)
			}
			v.checkSignedField(t, i, f, customIDs)
		}
	}
}

func (v *validator) checkConst(e Entity, t int, prop string, got any) {
	p, ok := e.Property(prop)
	if !ok || p.Const == "" {
		return
	}
	gotJSON, err := json.Marshal(got)
	if err != nil {
		return
	}
	var want bytes.Buffer
	if err := json.Compact(&want, []byte(p.Const)); err != nil {
		return
	}
	if !bytes.Equal(gotJSON, want.Bytes()) {
		v.add(path(KindTemplates, t, prop), RuleFixedValue, "debe ser %s, hay %s", p.Const, gotJSON)
	}
}

func (v *validator) checkSignedField(t, i int, f entity.ReportField, customFieldTypes map[string]string) {
	p := fieldPath(t, KindReportFields, i, "signed_field")
	rule, _ := v.contract.FieldType(f.FieldType)
	if !rule.RequiresSignedField {
		if f.SignedField != nil {
			v.add(p, RuleCrossRef, "signed_field solo aplica a campos que lo requieren")
		}
		return
	}
	if f.SignedField == nil || *f.SignedField == "" {
		v.add(p, RuleRequired, "los campos %q requieren signed_field", f.FieldType)
		return
	}
	for _, ref := range v.contract.CrossRefs {
		if ref.From != KindReportFields || ref.Property != "signed_field" {
			continue
		}
		if ref.When != "" && ref.When != f.FieldType {
			continue
		}
		target, ok := customFieldTypes[*f.SignedField]
		if !ok {
			v.add(p, RuleCrossRef, "%q no es un custom_field de la misma plantilla", *f.SignedField)
			return
		}
		if ref.FieldType != "" && target != ref.FieldType {
			v.add(p, RuleCrossRef, "%q es de tipo %q, se esperaba %q", *f.SignedField, target, ref.FieldType)
		}
	}
}
