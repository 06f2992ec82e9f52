package politician

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain/numeric"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
)

// fromDocument hydrates a record from a stored document. Values of the wrong
// JSON type are converted rather than rejected, since rows ingested before a
// mapping existed may hold strings in numeric fields.
func fromDocument(d db.Document) (dompol.Politician, error) {
	var src map[string]any
	if len(d.Source) > 0 {
		if err := json.Unmarshal(d.Source, &src); err != nil {
			return dompol.Politician{}, fmt.Errorf("decode document %s: %w", d.ID, err)
		}
	}

	return dompol.Politician{
		ID:             d.ID,
		Name:           asString(src[dompol.FieldName]),
		Party:          asString(src[dompol.FieldParty]),
		PartyFilter:    asString(src[dompol.FieldPartyFilter]),
		Gender:         asString(src[dompol.FieldGender]),
		PositionFilter: asString(src[dompol.FieldPositionFilter]),
		Position:       asString(src[dompol.FieldPosition]),
		Institution:    asString(src[dompol.FieldInstitution]),
		Region:         asString(src[dompol.FieldRegion]),
		BaseSalary:     asFloat(src[dompol.FieldBaseSalary]),
		Supplements:    asFloat(src[dompol.FieldSupplements]),
		ExtraPay:       asFloat(src[dompol.FieldExtraPay]),
		Allowances:     asFloat(src[dompol.FieldAllowances]),
		SeniorityPay:   asFloat(src[dompol.FieldSeniorityPay]),
		MonthlyPay:     asFloat(src[dompol.FieldMonthlyPay]),
		AnnualPay:      asFloat(src[dompol.FieldAnnualPay]),
		Notes:          asString(src[dompol.FieldNotes]),
	}, nil
}

func fromDocuments(docs []db.Document) ([]dompol.Politician, error) {
	out := make([]dompol.Politician, 0, len(docs))
	for _, d := range docs {
		p, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, ok := numeric.Parse(t); ok {
			return f
		}
	}
	return 0
}
