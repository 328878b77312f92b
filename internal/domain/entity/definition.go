package entity

// Definition es el documento JSON con el que se crea un tenant nuevo: catálogo, categorías,
// productos, servicios y plantillas de trabajo. El núcleo nunca lo persiste; solo describe la
// forma que el LLM debe producir y permite validarla.
type Definition struct {
	CatalogUnits []CatalogUnit `json:"catalog_units"`
	Categories   []Category    `json:"categories"`
	Products     []Item        `json:"products"`
	Services     []Item        `json:"services"`
	Templates    []Template    `json:"templates"`
}

// CatalogUnit unidad de medida para productos o servicios. System solo aplica a "services".
type CatalogUnit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Type   string `json:"type"` // products | services
	System *bool  `json:"system,omitempty"`
}

// Category agrupa productos o servicios.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Archived *bool  `json:"archived,omitempty"`
}

// Item representa tanto un producto como un servicio; comparten propiedades.
type Item struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Currency     string  `json:"currency"`          // ISO-4217 en minúsculas
	Unit         string  `json:"unit"`              // → CatalogUnit.ID
	Category     *string `json:"category,omitempty"` // → Category.ID
	PriceDefault *string `json:"price_default,omitempty"`
	Archived     *bool   `json:"archived,omitempty"`
}

// Template configuración reutilizable de un trabajo con campos previos (custom) y de reporte.
type Template struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	JobType              string        `json:"job_type,omitempty"`
	Type                 string        `json:"type,omitempty"`
	PossibleResolutions  []string      `json:"possible_resolutions"`
	ScheduledDurationMin int           `json:"scheduled_duration_min"`
	CanBeUsedOnMobile    bool          `json:"can_be_used_on_mobile"`
	CustomFields         []Field       `json:"custom_fields"`
	ReportFields         []ReportField `json:"report_fields"`
}

// Field campo que se llena antes del trabajo (no lo llenan los técnicos).
type Field struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
	DataType  string `json:"data_type"`
}

// ReportField campo que llena el técnico durante o después del trabajo.
type ReportField struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	FieldType   string  `json:"field_type"`
	DataType    string  `json:"data_type"`
	Required    *bool   `json:"required,omitempty"`
	SignedField *string `json:"signed_field,omitempty"`
}
