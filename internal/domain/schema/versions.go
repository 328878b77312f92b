package schema

// Prefijos de IDs compartidos por campos custom y de reporte.
const (
	FieldIDPrefix   = "custom_field"
	FieldTypePrefix = "custom_field_type"
)

// Valores de la propiedad "type" de unidades y categorías.
const (
	TypeProducts = "products"
	TypeServices = "services"
)

// builders registra cada versión. Para añadir una versión basta con una entrada nueva.
var builders = map[Version]func() Contract{
	V1: func() Contract { return newContract(V1, BaseOptional, v1Counts) },
	V2: func() Contract { return newContract(V2, BaseOptional, v2Counts) },
	V3: func() Contract { return newContract(V3, BaseRequired, v1Counts) },
}

// counts cantidades exigidas por versión.
type counts struct {
	productUnits      int
	serviceUnits      int
	productCategories int
	serviceCategories int
	products          int
	services          int
	templates         int
	minCustomFields   int
	minReportFields   int
}

var v1Counts = counts{
	productUnits:      2,
	serviceUnits:      1,
	productCategories: 1,
	serviceCategories: 1,
	products:          2,
	services:          2,
	templates:         5,
	minCustomFields:   2,
	minReportFields:   5,
}

var v2Counts = counts{
	productUnits:      2,
	serviceUnits:      2,
	productCategories: 2,
	serviceCategories: 2,
	products:          4,
	services:          4,
	templates:         5,
	minCustomFields:   3,
	minReportFields:   6,
}

func newContract(v Version, base BaseDefinitionMode, n counts) Contract {
	fieldTypes := fieldTypeMatrix()
	return Contract{
		Version:        v,
		BaseDefinition: base,
		Entities:       entities(fieldTypes),
		Cardinalities:  n.cardinalities(),
		FieldTypes:     fieldTypes,
		IDRules:        idRules(),
		CrossRefs:      crossRefs(),
		OutputRules: []string{
			"Adhere to schema, don't add comments or invent new field types.",
			"Don't add properties that are not described above.",
			"Output valid JSON only.",
		},
	}
}

func (n counts) cardinalities() []Cardinality {
	return []Cardinality{
		{Kind: KindCatalogUnits, Type: TypeProducts, Count: n.productUnits, Scope: ScopeDocument},
		{Kind: KindCatalogUnits, Type: TypeServices, Count: n.serviceUnits, Scope: ScopeDocument},
		{Kind: KindCategories, Type: TypeProducts, Count: n.productCategories, Scope: ScopeDocument},
		{Kind: KindCategories, Type: TypeServices, Count: n.serviceCategories, Scope: ScopeDocument},
		{Kind: KindProducts, Count: n.products, Scope: ScopeDocument},
		{Kind: KindServices, Count: n.services, Scope: ScopeDocument},
		{Kind: KindTemplates, Count: n.templates, Scope: ScopeDocument},
		{Kind: KindCustomFields, Count: n.minCustomFields, AtLeast: true, Scope: ScopeTemplate},
		{Kind: KindReportFields, Count: n.minReportFields, AtLeast: true, Scope: ScopeTemplate},
	}
}

func fieldTypeMatrix() []FieldTypeRule {
	both := func(ft string, dts ...string) FieldTypeRule {
		return FieldTypeRule{FieldType: ft, DataTypes: dts, Custom: true, Report: true}
	}
	reportOnly := func(ft string, dts ...string) FieldTypeRule {
		return FieldTypeRule{FieldType: ft, DataTypes: dts, Report: true}
	}
	signature := reportOnly("signature", "attachment")
	signature.RequiresSignedField = true

	return []FieldTypeRule{
		both("currency", "currency"),
		both("input", "string", "decimal", "integer"),
		both("file", "attachment"),
		both("button", "boolean"),
		both("dictionary", "dictionary"),
		both("link", "url"),
		both("date", "date_picker"),
		both("time", "time_picker"),
		both("datetime", "datetime_picker"),
		reportOnly("image", "attachment"),
		reportOnly("checkbox", "boolean"),
		signature,
	}
}

func entities(matrix []FieldTypeRule) []Entity {
	var customTypes, reportTypes []string
	for _, r := range matrix {
		if r.Custom {
			customTypes = append(customTypes, r.FieldType)
		}
		if r.Report {
			reportTypes = append(reportTypes, r.FieldType)
		}
	}
	kindEnum := []string{TypeProducts, TypeServices}

	itemProps := func(archived Property) []Property {
		return []Property{
			{Name: "id", Type: TypeString, Required: true},
			{Name: "name", Type: TypeString, Required: true},
			{Name: "currency", Type: TypeString, Required: true, Description: "lowercase iso-4217 code"},
			{Name: "unit", Type: TypeString, Required: true, Ref: KindCatalogUnits},
			{Name: "category", Type: TypeString, Ref: KindCategories},
			{Name: "price_default", Type: TypeString, Description: "decimal string"},
			archived,
		}
	}
	fieldProps := func(types []string) []Property {
		return []Property{
			{Name: "id", Type: TypeString, Required: true},
			{Name: "type", Type: TypeString, Required: true, Description: FieldTypePrefix + "-N with the same N as the id"},
			{Name: "name", Type: TypeString, Required: true},
			{Name: "field_type", Type: TypeString, Required: true, Enum: types},
			{Name: "data_type", Type: TypeString, Required: true, Description: "depends on field_type"},
		}
	}

	return []Entity{
		{
			Kind:     KindCatalogUnits,
			IDPrefix: "catalog_unit",
			Purpose:  "are used to define units of measurement for products and services",
			Properties: []Property{
				{Name: "id", Type: TypeString, Required: true},
				{Name: "name", Type: TypeString, Required: true},
				{Name: "code", Type: TypeString, Required: true},
				{Name: "type", Type: TypeString, Required: true, Enum: kindEnum},
				{Name: "system", Type: TypeBoolean, Description: `for "services" type only`},
			},
		},
		{
			Kind:     KindCategories,
			IDPrefix: "category",
			Purpose:  "are used to group products and services",
			Properties: []Property{
				{Name: "id", Type: TypeString, Required: true},
				{Name: "name", Type: TypeString, Required: true},
				{Name: "type", Type: TypeString, Required: true, Enum: kindEnum},
				{Name: "archived", Type: TypeBoolean, Default: "false"},
			},
		},
		{
			Kind:       KindProducts,
			IDPrefix:   "product",
			Purpose:    "are items that can be used in jobs as sold goods",
			Properties: itemProps(Property{Name: "archived", Type: TypeBoolean, Default: "false"}),
		},
		{
			Kind:     KindServices,
			IDPrefix: "service",
			Purpose:  "are provided during jobs",
			Properties: itemProps(Property{
				Name: "archived", Type: TypeBoolean, Default: "false",
				Description: "should be false for new services",
			}),
		},
		{
			Kind:     KindTemplates,
			IDPrefix: "template",
			Purpose:  "describe sets of fields for a job",
			Properties: []Property{
				{Name: "id", Type: TypeString, Required: true},
				{Name: "name", Type: TypeString, Required: true},
				{Name: "job_type", Type: TypeString, Required: true, Const: `"job_type-0"`},
				{Name: "possible_resolutions", Type: TypeStringList, Required: true, Const: `["resolution-0", "resolution-1"]`},
				{Name: "scheduled_duration_min", Type: TypeInteger, Required: true},
				{Name: "can_be_used_on_mobile", Type: TypeBoolean, Required: true, Const: "true"},
				{Name: "custom_fields", Type: TypeObjectList, Required: true},
				{Name: "report_fields", Type: TypeObjectList, Required: true},
			},
		},
		{
			Kind:       KindCustomFields,
			IDPrefix:   FieldIDPrefix,
			Parent:     KindTemplates,
			Purpose:    "are filled before the job, they are not filled by workers",
			Properties: fieldProps(customTypes),
		},
		{
			Kind:     KindReportFields,
			IDPrefix: FieldIDPrefix,
			Parent:   KindTemplates,
			Purpose:  "are filled by the worker during or after job execution",
			Properties: append(fieldProps(reportTypes),
				Property{Name: "required", Type: TypeBoolean, Default: "true"},
				Property{Name: "signed_field", Type: TypeString, Ref: KindCustomFields, Description: `only for "signature" field_type`},
			),
		},
	}
}

func idRules() []IDRule {
	return []IDRule{
		{Prefix: "catalog_unit", Kinds: []Kind{KindCatalogUnits}},
		{Prefix: "category", Kinds: []Kind{KindCategories}},
		{Prefix: "product", Kinds: []Kind{KindProducts}},
		{Prefix: "service", Kinds: []Kind{KindServices}},
		{Prefix: "template", Kinds: []Kind{KindTemplates}},
		{
			Prefix:     FieldIDPrefix,
			Kinds:      []Kind{KindCustomFields, KindReportFields},
			TypePrefix: FieldTypePrefix,
			Shared:     true,
		},
	}
}

func crossRefs() []CrossRef {
	return []CrossRef{
		{From: KindProducts, Property: "unit", To: KindCatalogUnits, Scope: ScopeDocument},
		{From: KindProducts, Property: "category", To: KindCategories, Scope: ScopeDocument},
		{From: KindServices, Property: "unit", To: KindCatalogUnits, Scope: ScopeDocument},
		{From: KindServices, Property: "category", To: KindCategories, Scope: ScopeDocument},
		{
			From: KindReportFields, Property: "signed_field", To: KindCustomFields,
			Scope: ScopeTemplate, When: "signature", FieldType: "file",
		},
	}
}
