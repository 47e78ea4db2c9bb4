package wiregen

import (
	"fmt"
	"strings"
)

// Location is the wire-location role of a field. It is assigned exactly
// once, during classification, and never re-inferred afterwards.
type Location int

const (
	// LocationBodyMember is the default role of an unlabeled field: one
	// member of the JSON object body.
	LocationBodyMember Location = iota
	// LocationPath inserts the field into a variable segment of the path
	// template.
	LocationPath
	// LocationQuery inserts the field into the query string.
	LocationQuery
	// LocationHeader carries the field as a single wire header value.
	LocationHeader
	// LocationNewtypeBody makes the field's value the entire body,
	// verbatim. At most one per struct, exclusive with body members.
	LocationNewtypeBody
)

var locationNames = map[Location]string{
	LocationBodyMember:  "body member",
	LocationPath:        "path",
	LocationQuery:       "query",
	LocationHeader:      "header",
	LocationNewtypeBody: "newtype body",
}

func (l Location) String() string {
	return locationNames[l]
}

// parseLocation maps a schema location attribute to a Location. The empty
// attribute defaults to a body member, matching an unlabeled field.
func parseLocation(attr string) (Location, bool) {
	switch attr {
	case "":
		return LocationBodyMember, true
	case "path":
		return LocationPath, true
	case "query":
		return LocationQuery, true
	case "header":
		return LocationHeader, true
	case "body":
		return LocationNewtypeBody, true
	default:
		return 0, false
	}
}

// FieldType is the declared type of a field. Besides the closed scalar
// set, object:<Name> references a named Go type.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	// TypeJSON is an arbitrary raw JSON value, carried without
	// re-encoding.
	TypeJSON FieldType = "json"
)

const objectTypePrefix = "object:"

func parseFieldType(s string) (FieldType, bool) {
	switch FieldType(s) {
	case TypeString, TypeInteger, TypeBoolean, TypeJSON:
		return FieldType(s), true
	}
	if name, ok := strings.CutPrefix(s, objectTypePrefix); ok && isIdent(name) {
		return FieldType(s), true
	}
	return "", false
}

// singleSegment reports whether the type can be rendered into and parsed
// from a single URL path segment.
func (t FieldType) singleSegment() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean:
		return true
	}
	return false
}

// FieldDescriptor is the classified form of one schema field.
type FieldDescriptor struct {
	Name     string
	Type     FieldType
	Location Location
	// Required fields must be present on the wire. Optional fields follow
	// the omit-if-absent policy: never encoded as null, simply absent.
	Required bool
	// WireName overrides the JSON member or header key. Empty means the
	// field name is used as-is.
	WireName string
	Feature  string
}

// GoName is the exported Go field name.
func (f FieldDescriptor) GoName() string {
	return symbolName(f.Name)
}

// VarName is the Go parameter name used in generated constructors.
func (f FieldDescriptor) VarName() string {
	return varName(f.Name)
}

// Wire is the key the field travels under on the wire.
func (f FieldDescriptor) Wire() string {
	if f.WireName != "" {
		return f.WireName
	}
	return f.Name
}

// GoType is the Go type of the field in generated structs. Optional
// fields become pointers so that absence is representable, except raw
// JSON, whose nil value already is the absent sentinel.
func (f FieldDescriptor) GoType() string {
	var base string
	switch f.Type {
	case TypeString:
		base = "string"
	case TypeInteger:
		base = "int"
	case TypeBoolean:
		base = "bool"
	case TypeJSON:
		return "json.RawMessage"
	default:
		base = strings.TrimPrefix(string(f.Type), objectTypePrefix)
	}
	if !f.Required {
		return "*" + base
	}
	return base
}

// ValidationKind names a cross-field invariant violation.
type ValidationKind string

const (
	// BodyConflict reports a newtype body field coexisting with body
	// members.
	BodyConflict ValidationKind = "BodyConflict"
	// DuplicateNewtypeBody reports more than one newtype body field.
	DuplicateNewtypeBody ValidationKind = "DuplicateNewtypeBody"
	// UnboundPathVariable reports a path template variable matching no
	// path-tagged field.
	UnboundPathVariable ValidationKind = "UnboundPathVariable"
	// TemplateMismatch reports a path-tagged field set a template does not
	// cover.
	TemplateMismatch ValidationKind = "TemplateMismatch"
	// BadLocation reports a role a struct cannot carry, eg. a path field
	// on a response.
	BadLocation ValidationKind = "BadLocation"
	// BadHeaderType reports a header field whose type is not representable
	// as a single header value.
	BadHeaderType ValidationKind = "BadHeaderType"
	// BadPathType reports a path field whose type is not representable as
	// a single path segment.
	BadPathType ValidationKind = "BadPathType"
)

// ValidationError reports a structurally parseable schema violating a
// cross-field invariant. It is fatal to compilation of that endpoint.
type ValidationError struct {
	Endpoint string
	Struct   string
	Kind     ValidationKind
	Fields   []string
	Msg      string
}

func (e *ValidationError) Error() string {
	s := fmt.Sprintf("endpoint %s: %s: %s", e.Endpoint, e.Struct, e.Kind)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if len(e.Fields) > 0 {
		s += fmt.Sprintf(" (fields %s)", strings.Join(e.Fields, ", "))
	}
	return s
}

// classify assigns every field its Location and validates the whole-struct
// invariants. The validation runs after the full field list is scanned:
// mutual exclusivity spans fields, so no per-field check can see it.
func (c *Compiler) classify(endpoint, structName string, fields []FieldSchema, isResponse bool) ([]FieldDescriptor, error) {
	seen := make(map[string]bool, len(fields))
	descs := make([]FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		if !isIdent(f.Name) {
			return nil, &ParseError{Name: endpoint, Msg: fmt.Sprintf("%s: invalid field name %q", structName, f.Name)}
		}
		if seen[f.Name] {
			return nil, &ParseError{Name: endpoint, Msg: fmt.Sprintf("%s: duplicate field %s", structName, f.Name)}
		}
		seen[f.Name] = true

		if f.Feature != "" && !c.hasFeature(f.Feature) {
			c.logf("endpoint %s: %s: dropping field %s gated on feature %s", endpoint, structName, f.Name, f.Feature)
			continue
		}
		loc, ok := parseLocation(f.Location)
		if !ok {
			return nil, &ParseError{Name: endpoint, Msg: fmt.Sprintf("%s: field %s: unknown location attribute %q", structName, f.Name, f.Location)}
		}
		typ, ok := parseFieldType(f.Type)
		if !ok {
			return nil, &ParseError{Name: endpoint, Msg: fmt.Sprintf("%s: field %s: unknown type %q", structName, f.Name, f.Type)}
		}
		required := true
		if f.Required != nil {
			required = *f.Required
		}
		descs = append(descs, FieldDescriptor{
			Name:     f.Name,
			Type:     typ,
			Location: loc,
			Required: required,
			WireName: f.WireName,
			Feature:  f.Feature,
		})
	}

	var newtypes, members []string
	for _, d := range descs {
		switch d.Location {
		case LocationNewtypeBody:
			newtypes = append(newtypes, d.Name)
		case LocationBodyMember:
			members = append(members, d.Name)
		case LocationPath, LocationQuery:
			if isResponse {
				return nil, &ValidationError{
					Endpoint: endpoint, Struct: structName, Kind: BadLocation,
					Fields: []string{d.Name},
					Msg:    fmt.Sprintf("a response cannot carry a %s field", d.Location),
				}
			}
			if d.Location == LocationPath && !d.Type.singleSegment() {
				return nil, &ValidationError{
					Endpoint: endpoint, Struct: structName, Kind: BadPathType,
					Fields: []string{d.Name},
					Msg:    fmt.Sprintf("type %s cannot render into a single path segment", d.Type),
				}
			}
			if d.Location == LocationQuery && !d.Type.singleSegment() {
				return nil, &ValidationError{
					Endpoint: endpoint, Struct: structName, Kind: BadLocation,
					Fields: []string{d.Name},
					Msg:    fmt.Sprintf("type %s cannot render into a query parameter", d.Type),
				}
			}
			if d.Location == LocationPath && !d.Required {
				return nil, &ValidationError{
					Endpoint: endpoint, Struct: structName, Kind: BadPathType,
					Fields: []string{d.Name},
					Msg:    "a path field cannot be optional",
				}
			}
		case LocationHeader:
			if d.Type != TypeString {
				return nil, &ValidationError{
					Endpoint: endpoint, Struct: structName, Kind: BadHeaderType,
					Fields: []string{d.Name},
					Msg:    fmt.Sprintf("type %s cannot render into a single header value", d.Type),
				}
			}
		}
	}
	if len(newtypes) > 1 {
		return nil, &ValidationError{Endpoint: endpoint, Struct: structName, Kind: DuplicateNewtypeBody, Fields: newtypes}
	}
	if len(newtypes) == 1 && len(members) > 0 {
		return nil, &ValidationError{
			Endpoint: endpoint, Struct: structName, Kind: BodyConflict,
			Fields: append(newtypes, members...),
			Msg:    "a newtype body excludes body members",
		}
	}
	return descs, nil
}

// fieldsAt filters fields by role, preserving declaration order.
func fieldsAt(fields []FieldDescriptor, loc Location) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range fields {
		if f.Location == loc {
			out = append(out, f)
		}
	}
	return out
}

// newtypeAt returns the newtype body field of a struct, if any.
func newtypeAt(fields []FieldDescriptor) *FieldDescriptor {
	for i := range fields {
		if fields[i].Location == LocationNewtypeBody {
			return &fields[i]
		}
	}
	return nil
}
