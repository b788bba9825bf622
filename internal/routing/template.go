package routing

import (
	"strings"

	"sulu/internal/application"
	"sulu/internal/domain"
)

// Template is a compiled route template such as "{title}" or "/articles/{title}".
// A leading "/" makes the route absolute; otherwise it is appended to the
// route of the nearest ancestor.
type Template struct {
	raw   string
	parts []part
}

type part struct {
	literal string
	field   string
}

// Fields looks up template field values
type Fields func(name string) (string, bool)

// ParseTemplate compiles raw
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	rest := raw
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if closeIdx := strings.IndexByte(rest, '}'); closeIdx >= 0 && (open < 0 || closeIdx < open) {
			return nil, &application.TemplateError{Template: raw, Reason: "unexpected '}'"}
		}
		if open < 0 {
			t.parts = append(t.parts, part{literal: rest})
			break
		}
		if open > 0 {
			t.parts = append(t.parts, part{literal: rest[:open]})
		}
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, &application.TemplateError{Template: raw, Reason: "unclosed '{'"}
		}
		field := strings.TrimSpace(rest[:end])
		if field == "" || strings.ContainsAny(field, "{/") {
			return nil, &application.TemplateError{Template: raw, Reason: "empty or malformed placeholder"}
		}
		t.parts = append(t.parts, part{field: field})
		rest = rest[end+1:]
	}

	if len(t.parts) == 0 {
		return nil, &application.TemplateError{Template: raw, Reason: "template is empty"}
	}
	return t, nil
}

// Raw returns the template source
func (t *Template) Raw() string {
	return t.raw
}

// Absolute reports whether the template produces a full path
func (t *Template) Absolute() bool {
	return strings.HasPrefix(t.raw, "/")
}

// Evaluate renders the template and slugifies every segment.
// The result has no leading slash.
func (t *Template) Evaluate(fields Fields) (string, error) {
	var b strings.Builder
	for _, p := range t.parts {
		if p.field == "" {
			b.WriteString(p.literal)
			continue
		}
		value, ok := fields(p.field)
		if !ok {
			return "", &application.TemplateError{Template: t.raw, Field: p.field, Reason: "unknown field"}
		}
		if strings.TrimSpace(value) == "" {
			return "", &application.TemplateError{Template: t.raw, Field: p.field, Reason: "value is empty"}
		}
		b.WriteString(value)
	}

	out := domain.SlugifyPath(b.String())
	if out == "" {
		return "", &application.TemplateError{Template: t.raw, Reason: "evaluates to an empty route"}
	}
	return out, nil
}

// NodeFields exposes a node's localized values to templates
func NodeFields(node *domain.Node, locale string) Fields {
	loc := node.Localization(locale)
	return func(name string) (string, bool) {
		switch name {
		case "title":
			if loc == nil {
				return "", true
			}
			return loc.Title, true
		case "name":
			return node.Name, true
		case "id":
			return node.ID, true
		case "locale":
			return locale, true
		case "type":
			return node.Type, true
		}
		if loc == nil {
			return "", false
		}
		v, ok := loc.Properties[name]
		if !ok {
			return "", false
		}
		return v.Text()
	}
}
