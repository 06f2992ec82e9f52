package patch

import (
	"fmt"
	"maps"

	"github.com/kailas-cloud/salarydex/internal/domain/politician"
)

// MaxTextSize is the maximum length of a text field in bytes.
const MaxTextSize = 16384

// Input is the partial form of a politician record: every field is optional.
// A nil pointer (absent or JSON null) leaves the stored value unchanged.
type Input struct {
	Name           *string  `json:"nombre"`
	Party          *string  `json:"partido"`
	PartyFilter    *string  `json:"partido_para_filtro"`
	Gender         *string  `json:"genero"`
	PositionFilter *string  `json:"cargo_para_filtro"`
	Position       *string  `json:"cargo"`
	Institution    *string  `json:"institucion"`
	Region         *string  `json:"ccaa"`
	BaseSalary     *float64 `json:"sueldobase_sueldo"`
	Supplements    *float64 `json:"complementos_sueldo"`
	ExtraPay       *float64 `json:"pagasextra_sueldo"`
	Allowances     *float64 `json:"otrasdietaseindemnizaciones_sueldo"`
	SeniorityPay   *float64 `json:"trienios_sueldo"`
	MonthlyPay     *float64 `json:"retribucionmensual"`
	AnnualPay      *float64 `json:"retribucionanual"`
	Notes          *string  `json:"observaciones"`
}

// Patch is a validated partial update keyed by engine field name.
type Patch struct {
	fields map[string]any
}

// New validates in and creates a Patch. At least one field must be provided and
// salary values must not be negative.
func New(in Input) (Patch, error) {
	fields := make(map[string]any)

	texts := []struct {
		name string
		v    *string
	}{
		{politician.FieldName, in.Name},
		{politician.FieldParty, in.Party},
		{politician.FieldPartyFilter, in.PartyFilter},
		{politician.FieldGender, in.Gender},
		{politician.FieldPositionFilter, in.PositionFilter},
		{politician.FieldPosition, in.Position},
		{politician.FieldInstitution, in.Institution},
		{politician.FieldRegion, in.Region},
		{politician.FieldNotes, in.Notes},
	}
	for _, t := range texts {
		if t.v == nil {
			continue
		}
		if len(*t.v) > MaxTextSize {
			return Patch{}, fmt.Errorf("%s too large (max %d bytes)", t.name, MaxTextSize)
		}
		fields[t.name] = *t.v
	}

	salaries := []struct {
		name string
		v    *float64
	}{
		{politician.FieldBaseSalary, in.BaseSalary},
		{politician.FieldSupplements, in.Supplements},
		{politician.FieldExtraPay, in.ExtraPay},
		{politician.FieldAllowances, in.Allowances},
		{politician.FieldSeniorityPay, in.SeniorityPay},
		{politician.FieldMonthlyPay, in.MonthlyPay},
		{politician.FieldAnnualPay, in.AnnualPay},
	}
	for _, s := range salaries {
		if s.v == nil {
			continue
		}
		if *s.v < 0 {
			return Patch{}, fmt.Errorf("%s must not be negative", s.name)
		}
		fields[s.name] = *s.v
	}

	if len(fields) == 0 {
		return Patch{}, fmt.Errorf("at least one field must be provided")
	}
	return Patch{fields: fields}, nil
}

// Fields returns a copy of the changed fields keyed by engine field name.
func (p Patch) Fields() map[string]any { return maps.Clone(p.fields) }

// Len returns the number of changed fields.
func (p Patch) Len() int { return len(p.fields) }
