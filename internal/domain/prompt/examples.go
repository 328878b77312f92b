package prompt

import (
	"encoding/json"

	"github.com/jhoicas/definition-generator/internal/domain/entity"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

func ptr[T any](v T) *T { return &v }

// exampleDefinition documento de muestra que acompaña a la descripción de cada colección.
// Los IDs de campos salen del mismo plan que usa el validador.
func exampleDefinition() entity.Definition {
	plan := schema.PlanFieldIDs([]schema.FieldCounts{{Custom: 2, Report: 3}})[0]
	return entity.Definition{
		CatalogUnits: []entity.CatalogUnit{
			{ID: schema.SequenceID("catalog_unit", 0), Name: "Piece", Code: "pcs", Type: schema.TypeProducts},
			{ID: schema.SequenceID("catalog_unit", 1), Name: "Service", Code: "service", Type: schema.TypeServices, System: ptr(true)},
		},
		Categories: []entity.Category{
			{ID: schema.SequenceID("category", 0), Name: "Installations", Type: schema.TypeServices, Archived: ptr(false)},
			{ID: schema.SequenceID("category", 1), Name: "Pipes", Type: schema.TypeProducts, Archived: ptr(false)},
		},
		Products: []entity.Item{{
			ID: schema.SequenceID("product", 0), Name: "Connector", Currency: "usd",
			PriceDefault: ptr("3.00"), Unit: "catalog_unit-0", Category: ptr("category-1"), Archived: ptr(false),
		}},
		Services: []entity.Item{{
			ID: schema.SequenceID("service", 0), Name: "Router Installation", Currency: "usd",
			PriceDefault: ptr("10.00"), Unit: "catalog_unit-1", Category: ptr("category-0"), Archived: ptr(false),
		}},
		Templates: []entity.Template{{
			ID:                   schema.SequenceID("template", 0),
			Name:                 "Emergency",
			JobType:              "job_type-0",
			PossibleResolutions:  []string{"resolution-0", "resolution-1"},
			ScheduledDurationMin: 120,
			CanBeUsedOnMobile:    true,
			CustomFields: []entity.Field{
				{ID: plan.Custom[0].ID, Type: plan.Custom[0].Type, Name: "User agreement", FieldType: "file", DataType: "attachment"},
				{ID: plan.Custom[1].ID, Type: plan.Custom[1].Type, Name: "Customer comment", FieldType: "input", DataType: "string"},
			},
			ReportFields: []entity.ReportField{
				{ID: plan.Report[0].ID, Type: plan.Report[0].Type, Name: "Photo of the issue (before)", FieldType: "image", DataType: "attachment", Required: ptr(true)},
				{ID: plan.Report[1].ID, Type: plan.Report[1].Type, Name: "Turn off electricity", FieldType: "checkbox", DataType: "boolean", Required: ptr(true)},
				{ID: plan.Report[2].ID, Type: plan.Report[2].Type, Name: "Customer signature", FieldType: "signature", DataType: "attachment", SignedField: ptr(plan.Custom[0].ID), Required: ptr(true)},
			},
		}},
	}
}

// exampleJSON serializa la colección de ejemplo de un kind de primer nivel.
func exampleJSON(def entity.Definition, kind schema.Kind) (string, bool) {
	var v any
	switch kind {
	case schema.KindCatalogUnits:
		v = def.CatalogUnits
	case schema.KindCategories:
		v = def.Categories
	case schema.KindProducts:
		v = def.Products
	case schema.KindServices:
		v = def.Services
	case schema.KindTemplates:
		v = def.Templates
	default:
		return "", false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}
