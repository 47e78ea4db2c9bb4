package wiregen

import (
	"fmt"
	"strings"
)

// Segment is one element of a parsed path template: a literal chunk or a
// variable placeholder. Exactly one of Literal and Var is set.
type Segment struct {
	Literal string
	Var     string
}

// IsVar reports whether the segment is a variable placeholder.
func (s Segment) IsVar() bool {
	return s.Var != ""
}

// PathTemplate is an ordered sequence of literal and variable segments.
// Concatenating the segments, with each variable replaced by its value,
// reproduces a concrete path.
type PathTemplate struct {
	Raw      string
	Segments []Segment
}

// ParsePathTemplate parses a raw path template. Variables are identifiers
// prefixed with a colon and occupy a whole path segment:
//
//	/user/:user_id/rooms/:room_id/account_data/:event_type
func ParsePathTemplate(raw string) (*PathTemplate, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("path template %q: must start with /", raw)
	}
	t := &PathTemplate{Raw: raw}
	var lit strings.Builder
	parts := strings.Split(raw, "/")
	for _, part := range parts[1:] {
		if !strings.HasPrefix(part, ":") {
			if part == "" {
				return nil, fmt.Errorf("path template %q: empty segment", raw)
			}
			lit.WriteString("/")
			lit.WriteString(part)
			continue
		}
		name := part[1:]
		if !isIdent(name) {
			return nil, fmt.Errorf("path template %q: invalid variable %q", raw, part)
		}
		lit.WriteString("/")
		t.Segments = append(t.Segments, Segment{Literal: lit.String()})
		lit.Reset()
		t.Segments = append(t.Segments, Segment{Var: name})
	}
	if lit.Len() > 0 {
		t.Segments = append(t.Segments, Segment{Literal: lit.String()})
	}
	return t, nil
}

// Vars lists the variable names in template order.
func (t *PathTemplate) Vars() []string {
	var vars []string
	for _, s := range t.Segments {
		if s.IsVar() {
			vars = append(vars, s.Var)
		}
	}
	return vars
}

// Render substitutes values for the template variables, in order. It is
// the reference implementation of path rendering; generated bindings emit
// the equivalent concatenation inline.
func (t *PathTemplate) Render(values []string) (string, error) {
	vars := t.Vars()
	if len(values) != len(vars) {
		return "", fmt.Errorf("path template %q: got %d values for %d variables", t.Raw, len(values), len(vars))
	}
	var b strings.Builder
	i := 0
	for _, s := range t.Segments {
		if s.IsVar() {
			b.WriteString(values[i])
			i++
			continue
		}
		b.WriteString(s.Literal)
	}
	return b.String(), nil
}

// bindPath binds the template variables to the path-tagged fields of a
// request. Every variable must name a path field and every path field
// must appear exactly once; a template with fewer variables than path
// fields is a TemplateMismatch, an extra or unknown variable an
// UnboundPathVariable. Two templates may bind the same field set
// independently, one per protocol-version path shape.
func bindPath(endpoint string, t *PathTemplate, pathFields []FieldDescriptor) error {
	byName := make(map[string]bool, len(pathFields))
	for _, f := range pathFields {
		byName[f.Name] = true
	}
	seen := make(map[string]bool)
	vars := t.Vars()
	for _, v := range vars {
		if !byName[v] {
			return &ValidationError{
				Endpoint: endpoint, Struct: "request", Kind: UnboundPathVariable,
				Fields: []string{v},
				Msg:    fmt.Sprintf("template %s declares a variable with no matching path field", t.Raw),
			}
		}
		if seen[v] {
			return &ValidationError{
				Endpoint: endpoint, Struct: "request", Kind: UnboundPathVariable,
				Fields: []string{v},
				Msg:    fmt.Sprintf("template %s binds the variable twice", t.Raw),
			}
		}
		seen[v] = true
	}
	if len(vars) != len(pathFields) {
		var unbound []string
		for _, f := range pathFields {
			if !seen[f.Name] {
				unbound = append(unbound, f.Name)
			}
		}
		return &ValidationError{
			Endpoint: endpoint, Struct: "request", Kind: TemplateMismatch,
			Fields: unbound,
			Msg:    fmt.Sprintf("template %s has %d variables for %d path fields", t.Raw, len(vars), len(pathFields)),
		}
	}
	return nil
}
