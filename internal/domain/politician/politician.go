// Package politician holds the salary record type and its declarative schema.
package politician

import "github.com/kailas-cloud/salarydex/internal/domain/collection/field"

// DefaultCollection is the collection records are ingested into.
const DefaultCollection = "politicians"

// Engine field names.
const (
	FieldName           = "nombre"
	FieldParty          = "partido"
	FieldPartyFilter    = "partido_para_filtro"
	FieldGender         = "genero"
	FieldPositionFilter = "cargo_para_filtro"
	FieldPosition       = "cargo"
	FieldInstitution    = "institucion"
	FieldRegion         = "ccaa"
	FieldBaseSalary     = "sueldobase_sueldo"
	FieldSupplements    = "complementos_sueldo"
	FieldExtraPay       = "pagasextra_sueldo"
	FieldAllowances     = "otrasdietaseindemnizaciones_sueldo"
	FieldSeniorityPay   = "trienios_sueldo"
	FieldMonthlyPay     = "retribucionmensual"
	FieldAnnualPay      = "retribucionanual"
	FieldNotes          = "observaciones"
)

// DefaultStatisticsField is the salary field statistics are computed on.
const DefaultStatisticsField = FieldBaseSalary

// Politician is one salary record. ID is assigned by the search engine.
type Politician struct {
	ID             string  `json:"_id,omitempty"`
	Name           string  `json:"nombre"`
	Party          string  `json:"partido"`
	PartyFilter    string  `json:"partido_para_filtro"`
	Gender         string  `json:"genero"`
	PositionFilter string  `json:"cargo_para_filtro"`
	Position       string  `json:"cargo"`
	Institution    string  `json:"institucion"`
	Region         string  `json:"ccaa"`
	BaseSalary     float64 `json:"sueldobase_sueldo"`
	Supplements    float64 `json:"complementos_sueldo"`
	ExtraPay       float64 `json:"pagasextra_sueldo"`
	Allowances     float64 `json:"otrasdietaseindemnizaciones_sueldo"`
	SeniorityPay   float64 `json:"trienios_sueldo"`
	MonthlyPay     float64 `json:"retribucionmensual"`
	AnnualPay      float64 `json:"retribucionanual"`
	Notes          string  `json:"observaciones"`
}

// Schema returns the declared fields of a politician record in column order.
func Schema() []field.Field {
	return []field.Field{
		field.Reconstruct(FieldName, field.String, true, nil),
		field.Reconstruct(FieldParty, field.String, false, nil),
		field.Reconstruct(FieldPartyFilter, field.String, false, nil),
		field.Reconstruct(FieldGender, field.String, false, nil),
		field.Reconstruct(FieldPositionFilter, field.String, false, nil),
		field.Reconstruct(FieldPosition, field.String, false, nil),
		field.Reconstruct(FieldInstitution, field.String, false, nil),
		field.Reconstruct(FieldRegion, field.String, false, nil),
		field.Reconstruct(FieldBaseSalary, field.Float, false, nil),
		field.Reconstruct(FieldSupplements, field.Float, false, nil),
		field.Reconstruct(FieldExtraPay, field.Float, false, nil),
		field.Reconstruct(FieldAllowances, field.Float, false, nil),
		field.Reconstruct(FieldSeniorityPay, field.Float, false, nil),
		field.Reconstruct(FieldMonthlyPay, field.Float, false, nil),
		field.Reconstruct(FieldAnnualPay, field.Float, false, nil),
		field.Reconstruct(FieldNotes, field.String, true, nil),
	}
}

// SalaryFields returns the numeric salary fields in schema order.
func SalaryFields() []string {
	return []string{
		FieldBaseSalary, FieldSupplements, FieldExtraPay, FieldAllowances,
		FieldSeniorityPay, FieldMonthlyPay, FieldAnnualPay,
	}
}

// IsSalaryField reports whether name is one of the numeric salary fields.
func IsSalaryField(name string) bool {
	for _, f := range SalaryFields() {
		if f == name {
			return true
		}
	}
	return false
}

// ColumnTypes maps each declared field name to its type.
func ColumnTypes() map[string]field.Type {
	schema := Schema()
	m := make(map[string]field.Type, len(schema))
	for _, f := range schema {
		m[f.Name()] = f.FieldType()
	}
	return m
}

// Statistics summarises one salary field over a collection.
type Statistics struct {
	Field  string
	Mean   float64
	Median float64
	Top    []Politician
}
