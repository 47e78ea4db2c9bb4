package wiregen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vincent-petithory/wiregen/wire"
)

var methods = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

// Endpoint is the compiled intermediate representation of one endpoint
// schema: metadata, classified field lists and bound path templates. It is
// built once at compile time and never mutated.
type Endpoint struct {
	Metadata wire.Metadata
	Request  []FieldDescriptor
	Response []FieldDescriptor
	// ErrorType is the Go type a failure response decodes into.
	ErrorType string

	Legacy *PathTemplate
	Stable *PathTemplate
}

// PkgName is the Go package name generated for the endpoint.
func (e *Endpoint) PkgName() string {
	return strings.ReplaceAll(e.Metadata.Name, "_", "")
}

// PathFields lists the request path fields in declaration order.
func (e *Endpoint) PathFields() []FieldDescriptor {
	return fieldsAt(e.Request, LocationPath)
}

// QueryFields lists the request query fields in declaration order.
func (e *Endpoint) QueryFields() []FieldDescriptor {
	return fieldsAt(e.Request, LocationQuery)
}

// RequestHeaderFields lists the request header fields.
func (e *Endpoint) RequestHeaderFields() []FieldDescriptor {
	return fieldsAt(e.Request, LocationHeader)
}

// RequestBodyFields lists the request body members.
func (e *Endpoint) RequestBodyFields() []FieldDescriptor {
	return fieldsAt(e.Request, LocationBodyMember)
}

// RequestNewtype returns the request newtype body field, if any.
func (e *Endpoint) RequestNewtype() *FieldDescriptor {
	return newtypeAt(e.Request)
}

// ResponseHeaderFields lists the response header fields.
func (e *Endpoint) ResponseHeaderFields() []FieldDescriptor {
	return fieldsAt(e.Response, LocationHeader)
}

// ResponseBodyFields lists the response body members.
func (e *Endpoint) ResponseBodyFields() []FieldDescriptor {
	return fieldsAt(e.Response, LocationBodyMember)
}

// ResponseNewtype returns the response newtype body field, if any.
func (e *Endpoint) ResponseNewtype() *FieldDescriptor {
	return newtypeAt(e.Response)
}

// Templates lists the bound path templates, legacy first when present.
func (e *Endpoint) Templates() []*PathTemplate {
	var ts []*PathTemplate
	if e.Legacy != nil {
		ts = append(ts, e.Legacy)
	}
	if e.Stable != nil {
		ts = append(ts, e.Stable)
	}
	return ts
}

// Content is the compiled representation of a discriminated content
// payload.
type Content struct {
	Name     string
	TagField string
	Variants []ContentVariant
	Blocks   []ContentBlock
}

// ContentVariant is one compiled variant: its fields are flattened next
// to the tag at the same nesting level on the wire.
type ContentVariant struct {
	Name     string
	TagValue string
	Fields   []FieldDescriptor
}

// GoName is the generated Go type name of the variant.
func (v ContentVariant) GoName() string {
	return symbolName(v.Name)
}

// ContentBlock is a compiled named sub-object.
type ContentBlock struct {
	Name   string
	Fields []FieldDescriptor
}

// GoName is the generated Go type name of the block.
func (b ContentBlock) GoName() string {
	return symbolName(b.Name)
}

// Compiler compiles schema descriptions into their IR. Compilation of an
// endpoint is a strict, single-threaded Parse -> Classify -> Bind
// sequence; endpoints share no state, so distinct endpoints may be
// compiled concurrently.
type Compiler struct {
	// Log receives compilation progress. Nil disables logging.
	Log logrus.FieldLogger
	// Features enables feature-gated schema fields.
	Features []string
}

func (c *Compiler) logf(format string, v ...interface{}) {
	if c.Log != nil {
		c.Log.Debugf(format, v...)
	}
}

func (c *Compiler) hasFeature(name string) bool {
	return lo.Contains(c.Features, name)
}

// Compile builds the Endpoint IR from a raw endpoint schema. It fails
// with a ParseError for a malformed description and a ValidationError for
// a violated cross-field invariant; no partial IR is ever returned.
func (c *Compiler) Compile(s *EndpointSchema) (*Endpoint, error) {
	if s == nil {
		return nil, &ParseError{Msg: "no endpoint schema provided"}
	}
	m := s.Metadata
	if m.Name == "" {
		return nil, &ParseError{Msg: "metadata: missing name"}
	}
	if !isIdent(m.Name) {
		return nil, &ParseError{Name: m.Name, Msg: "metadata: name is not an identifier"}
	}
	method := strings.ToUpper(m.Method)
	if !lo.Contains(methods, method) {
		return nil, &ParseError{Name: m.Name, Msg: fmt.Sprintf("metadata: unknown method %q", m.Method)}
	}
	if m.LegacyPath == "" && m.StablePath == "" {
		return nil, &ParseError{Name: m.Name, Msg: "metadata: at least one of legacy_path, stable_path is required"}
	}
	auth := wire.AuthNone
	switch m.Authentication {
	case "", string(wire.AuthNone):
	case string(wire.AuthAccessToken):
		auth = wire.AuthAccessToken
	case string(wire.AuthServerSignature):
		auth = wire.AuthServerSignature
	default:
		return nil, &ParseError{Name: m.Name, Msg: fmt.Sprintf("metadata: unknown authentication %q", m.Authentication)}
	}

	c.logf("compiling endpoint %s -> %s", m.Name, method)
	request, err := c.classify(m.Name, "request", s.Request, false)
	if err != nil {
		return nil, err
	}
	response, err := c.classify(m.Name, "response", s.Response, true)
	if err != nil {
		return nil, err
	}

	e := &Endpoint{
		Metadata: wire.Metadata{
			Description:    m.Description,
			Method:         method,
			Name:           m.Name,
			LegacyPath:     m.LegacyPath,
			StablePath:     m.StablePath,
			RateLimited:    m.RateLimited,
			Authentication: auth,
			Introduced:     m.Introduced,
			Deprecated:     m.Deprecated,
			Removed:        m.Removed,
		},
		Request:   request,
		Response:  response,
		ErrorType: s.Error,
	}
	if e.ErrorType == "" {
		e.ErrorType = "wire.Error"
	}

	pathFields := e.PathFields()
	if m.LegacyPath != "" {
		t, err := ParsePathTemplate(m.LegacyPath)
		if err != nil {
			return nil, &ParseError{Name: m.Name, Msg: "metadata: legacy_path", Err: err}
		}
		if err := bindPath(m.Name, t, pathFields); err != nil {
			return nil, err
		}
		e.Legacy = t
	}
	if m.StablePath != "" {
		t, err := ParsePathTemplate(m.StablePath)
		if err != nil {
			return nil, &ParseError{Name: m.Name, Msg: "metadata: stable_path", Err: err}
		}
		if err := bindPath(m.Name, t, pathFields); err != nil {
			return nil, err
		}
		e.Stable = t
	}
	c.logf("endpoint %s: %d request fields, %d response fields", m.Name, len(request), len(response))
	return e, nil
}

// CompileContent builds the Content IR from a raw content schema.
func (c *Compiler) CompileContent(s *ContentSchema) (*Content, error) {
	if s == nil {
		return nil, &ParseError{Msg: "no content schema provided"}
	}
	if s.Name == "" || !isIdent(s.Name) {
		return nil, &ParseError{Name: s.Name, Msg: "content: missing or invalid name"}
	}
	if s.TagField == "" {
		return nil, &ParseError{Name: s.Name, Msg: "content: missing tag_field"}
	}
	if len(s.Variants) == 0 {
		return nil, &ParseError{Name: s.Name, Msg: "content: at least one variant is required"}
	}
	out := &Content{Name: symbolName(s.Name), TagField: s.TagField}
	tags := make(map[string]bool, len(s.Variants))
	for _, v := range s.Variants {
		if v.TagValue == "" {
			return nil, &ParseError{Name: s.Name, Msg: fmt.Sprintf("content: variant %s: missing tag_value", v.Name)}
		}
		if tags[v.TagValue] {
			return nil, &ParseError{Name: s.Name, Msg: fmt.Sprintf("content: duplicate tag value %q", v.TagValue)}
		}
		tags[v.TagValue] = true
		fields, err := c.classifyContentFields(s.Name, v.Name, v.Fields)
		if err != nil {
			return nil, err
		}
		out.Variants = append(out.Variants, ContentVariant{
			Name:     v.Name,
			TagValue: v.TagValue,
			Fields:   fields,
		})
	}
	for _, b := range s.Blocks {
		if !isIdent(b.Name) {
			return nil, &ParseError{Name: s.Name, Msg: fmt.Sprintf("content: invalid block name %q", b.Name)}
		}
		fields, err := c.classifyContentFields(s.Name, b.Name, b.Fields)
		if err != nil {
			return nil, err
		}
		out.Blocks = append(out.Blocks, ContentBlock{Name: b.Name, Fields: fields})
	}
	return out, nil
}

// classifyContentFields classifies variant or block fields. Content fields
// are always body members: a location attribute has no meaning there.
func (c *Compiler) classifyContentFields(content, structName string, fields []FieldSchema) ([]FieldDescriptor, error) {
	for _, f := range fields {
		if f.Location != "" {
			return nil, &ParseError{Name: content, Msg: fmt.Sprintf("%s: field %s: content fields take no location attribute", structName, f.Name)}
		}
	}
	return c.classify(content, structName, fields, false)
}
