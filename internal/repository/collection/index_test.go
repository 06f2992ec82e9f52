package collection

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/collection/field"
	"github.com/kailas-cloud/salarydex/internal/domain/politician"
)

func prop(t *testing.T, def *db.IndexDefinition, name string) map[string]any {
	t.Helper()
	m, ok := def.Properties[name].(map[string]any)
	if !ok {
		t.Fatalf("property %q missing", name)
	}
	return m
}

func TestBuildIndex_ScalarTypes(t *testing.T) {
	fields := []field.Field{
		field.Reconstruct("partido", field.String, false, nil),
		field.Reconstruct("alta", field.Date, false, nil),
		field.Reconstruct("trienios", field.Integer, false, nil),
		field.Reconstruct("sueldo", field.Float, false, nil),
		field.Reconstruct("etiquetas", field.List, false, nil),
	}
	def, err := buildIndex("politicians", fields, Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"partido":   db.MappingKeyword,
		"alta":      db.MappingDate,
		"trienios":  db.MappingLong,
		"sueldo":    db.MappingFloat,
		"etiquetas": db.MappingKeyword,
	}
	for name, typ := range want {
		if got := prop(t, def, name)["type"]; got != typ {
			t.Errorf("%s type = %v, want %s", name, got, typ)
		}
	}
}

func TestBuildIndex_FullText(t *testing.T) {
	def, err := buildIndex("politicians", politician.Schema(), Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nombre := prop(t, def, politician.FieldName)
	if nombre["type"] != db.MappingText {
		t.Fatalf("nombre type = %v, want text", nombre["type"])
	}
	kw := nombre["fields"].(map[string]any)["keyword"].(map[string]any)
	if kw["ignore_above"] != db.KeywordIgnoreAbove {
		t.Errorf("keyword sub-field = %v", kw)
	}
	if got := prop(t, def, politician.FieldParty)["type"]; got != db.MappingKeyword {
		t.Errorf("partido type = %v, want keyword", got)
	}
	for _, f := range politician.SalaryFields() {
		if got := prop(t, def, f)["type"]; got != db.MappingFloat {
			t.Errorf("%s type = %v, want float", f, got)
		}
	}
}

func TestBuildIndex_Nested(t *testing.T) {
	inner := []field.Field{
		field.Reconstruct("desde", field.Date, false, nil),
		field.Reconstruct("detalle", field.Object, false, []field.Field{
			field.Reconstruct("importe", field.Float, false, nil),
		}),
	}
	fields := []field.Field{field.Reconstruct("cargos", field.ObjectList, false, inner)}

	def, err := buildIndex("politicians", fields, Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cargos := prop(t, def, "cargos")
	if cargos["type"] != db.MappingNested {
		t.Fatalf("cargos type = %v, want nested", cargos["type"])
	}
	props := cargos["properties"].(map[string]any)
	detalle := props["detalle"].(map[string]any)
	if detalle["type"] != db.MappingNested {
		t.Errorf("detalle type = %v, want nested", detalle["type"])
	}
	importe := detalle["properties"].(map[string]any)["importe"].(map[string]any)
	if importe["type"] != db.MappingFloat {
		t.Errorf("importe type = %v, want float", importe["type"])
	}
}

func TestBuildIndex_InvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		fields []field.Field
	}{
		{"unknown type", []field.Field{field.Reconstruct("x", field.Type("geo_shape"), false, nil)}},
		{"nested without children", []field.Field{field.Reconstruct("x", field.Object, false, nil)}},
		{"unknown inner type", []field.Field{field.Reconstruct("x", field.Object, false, []field.Field{
			field.Reconstruct("y", field.Type("blob"), false, nil),
		})}},
		{"no fields", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildIndex("politicians", tt.fields, Settings{})
			if !errors.Is(err, domain.ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema, got %v", err)
			}
		})
	}
}

func TestBuildIndex_Deterministic(t *testing.T) {
	a, _ := buildIndex("politicians", politician.Schema(), Settings{})
	b, _ := buildIndex("politicians", politician.Schema(), Settings{})
	if a.String() != b.String() {
		t.Errorf("definitions differ:\n%s\n%s", a, b)
	}
}
