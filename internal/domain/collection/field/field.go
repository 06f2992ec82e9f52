package field

import "fmt"

// Type is the declared value type of a record field.
type Type string

// Field type constants.
const (
	String     Type = "string"
	Date       Type = "date"
	Integer    Type = "integer"
	Float      Type = "float"
	List       Type = "list"
	Object     Type = "object"
	ObjectList Type = "object_list"
)

// IsNested reports whether the type carries an inner schema.
func (t Type) IsNested() bool { return t == Object || t == ObjectList }

// Field is an immutable value object describing one declared record field.
type Field struct {
	name     string
	kind     Type
	fullText bool
	children []Field
}

// New validates and creates a scalar or list Field.
// Name must be non-empty and at most 128 chars. The type itself is checked by the
// mapping translator so unknown types surface at collection setup.
func New(name string, t Type) (Field, error) {
	if err := validateName(name); err != nil {
		return Field{}, err
	}
	if t.IsNested() {
		return Field{}, fmt.Errorf("field %q: nested types require NewNested", name)
	}
	return Field{name: name, kind: t}, nil
}

// NewText creates a string field that is searchable as full text and also keeps
// an exact-match sub-field.
func NewText(name string) (Field, error) {
	if err := validateName(name); err != nil {
		return Field{}, err
	}
	return Field{name: name, kind: String, fullText: true}, nil
}

// NewNested creates an object or list-of-objects field with an inner schema.
func NewNested(name string, t Type, children []Field) (Field, error) {
	if err := validateName(name); err != nil {
		return Field{}, err
	}
	if !t.IsNested() {
		return Field{}, fmt.Errorf("field %q: type %q is not nested", name, t)
	}
	if len(children) == 0 {
		return Field{}, fmt.Errorf("field %q: nested field requires at least one child", name)
	}
	return Field{name: name, kind: t, children: children}, nil
}

// Reconstruct creates a Field without validation.
func Reconstruct(name string, t Type, fullText bool, children []Field) Field {
	return Field{name: name, kind: t, fullText: fullText, children: children}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("field name is required")
	}
	if len(name) > 128 {
		return fmt.Errorf("field name %q too long (max 128)", name)
	}
	return nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldType returns the declared value type.
func (f Field) FieldType() Type { return f.kind }

// FullText reports whether a string field is indexed for full-text search.
func (f Field) FullText() bool { return f.fullText }

// Children returns the inner schema of a nested field.
func (f Field) Children() []Field { return f.children }
