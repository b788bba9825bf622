package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the declared type of a content property
type Kind string

const (
	KindString  Kind = "string"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindBool    Kind = "bool"
	KindStrings Kind = "strings"
)

// Value is a typed property value
type Value struct {
	Kind    Kind     `json:"kind"`
	String  string   `json:"string,omitempty"`
	Int     int64    `json:"int,omitempty"`
	Float   float64  `json:"float,omitempty"`
	Bool    bool     `json:"bool,omitempty"`
	Strings []string `json:"strings,omitempty"`
}

// Properties maps field names to typed values
type Properties map[string]Value

func StringValue(s string) Value    { return Value{Kind: KindString, String: s} }
func IntValue(i int64) Value        { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value    { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func StringsValue(s []string) Value { return Value{Kind: KindStrings, Strings: s} }

// Text renders a scalar value for use in route templates
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.String, true
	case KindInt:
		return strconv.FormatInt(v.Int, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.Bool), true
	default:
		return "", false
	}
}

// IsZero reports whether the value carries no data
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindString:
		return v.String == ""
	case KindStrings:
		return len(v.Strings) == 0
	case KindInt, KindFloat, KindBool:
		return false
	default:
		return true
	}
}

// ParseValue converts raw text into a value of the given kind
func ParseValue(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(raw), nil
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not an integer: %q", raw)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a number: %q", raw)
		}
		return FloatValue(f), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("not a boolean: %q", raw)
		}
		return BoolValue(b), nil
	case KindStrings:
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return StringsValue(parts), nil
	default:
		return Value{}, fmt.Errorf("unknown kind: %s", kind)
	}
}

// FieldDef declares one property of a content type
type FieldDef struct {
	Name     string
	Kind     Kind
	Required bool
}

// ContentType is the schema of a family of content nodes
type ContentType struct {
	Name          string
	RouteTemplate string
	Fields        []FieldDef
}

// FieldError reports a property that does not match its schema
type FieldError struct {
	Type    string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Type, e.Field, e.Message)
}

// Field returns the declaration of name
func (t ContentType) Field(name string) (FieldDef, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Validate checks props against the declared fields
func (t ContentType) Validate(props Properties) error {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def, ok := t.Field(name)
		if !ok {
			return &FieldError{Type: t.Name, Field: name, Message: "unknown field"}
		}
		if props[name].Kind != def.Kind {
			return &FieldError{
				Type:    t.Name,
				Field:   name,
				Message: fmt.Sprintf("expected %s, got %s", def.Kind, props[name].Kind),
			}
		}
	}

	for _, def := range t.Fields {
		if !def.Required {
			continue
		}
		if v, ok := props[def.Name]; !ok || v.IsZero() {
			return &FieldError{Type: t.Name, Field: def.Name, Message: "is required"}
		}
	}
	return nil
}

// Registry holds the known content types
type Registry struct {
	types map[string]ContentType
}

// NewRegistry creates a registry from the given types
func NewRegistry(types ...ContentType) *Registry {
	r := &Registry{types: make(map[string]ContentType, len(types))}
	for _, t := range types {
		r.types[t.Name] = t
	}
	return r
}

// DefaultRegistry returns the built-in page and article types
func DefaultRegistry() *Registry {
	return NewRegistry(
		ContentType{
			Name:          "page",
			RouteTemplate: "{title}",
			Fields: []FieldDef{
				{Name: "description", Kind: KindString},
				{Name: "keywords", Kind: KindStrings},
				{Name: "show_in_navigation", Kind: KindBool},
			},
		},
		ContentType{
			Name:          "article",
			RouteTemplate: "/articles/{title}",
			Fields: []FieldDef{
				{Name: "summary", Kind: KindString},
				{Name: "author", Kind: KindString},
				{Name: "reading_minutes", Kind: KindInt},
			},
		},
	)
}

// Lookup returns the content type called name
func (r *Registry) Lookup(name string) (ContentType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// SetRouteTemplate overrides the route template of an existing type
func (r *Registry) SetRouteTemplate(name, template string) bool {
	t, ok := r.types[name]
	if !ok {
		return false
	}
	t.RouteTemplate = template
	r.types[name] = t
	return true
}

// Names returns the registered type names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
