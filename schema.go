package wiregen

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a schema file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// SchemaFile is the raw declarative description held by one schema file.
// Exactly one of the sections must be set.
type SchemaFile struct {
	Endpoint *EndpointSchema `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Content  *ContentSchema  `json:"content,omitempty" yaml:"content,omitempty"`
}

// EndpointSchema describes one RPC endpoint: metadata, request fields,
// response fields and the error type decoded from failure responses.
type EndpointSchema struct {
	Metadata MetadataSchema `json:"metadata" yaml:"metadata"`
	Request  []FieldSchema  `json:"request,omitempty" yaml:"request,omitempty"`
	Response []FieldSchema  `json:"response,omitempty" yaml:"response,omitempty"`
	// Error is the Go type a failure response decodes into. Empty selects
	// the default wire.Error payload.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// MetadataSchema is the metadata block of an endpoint description.
type MetadataSchema struct {
	Description string `json:"description" yaml:"description"`
	Method      string `json:"method" yaml:"method"`
	Name        string `json:"name" yaml:"name"`
	LegacyPath  string `json:"legacy_path,omitempty" yaml:"legacy_path,omitempty"`
	StablePath  string `json:"stable_path,omitempty" yaml:"stable_path,omitempty"`
	RateLimited bool   `json:"rate_limited,omitempty" yaml:"rate_limited,omitempty"`
	// Authentication is advisory: none, access_token or server_signature.
	Authentication string `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	Introduced     string `json:"introduced,omitempty" yaml:"introduced,omitempty"`
	Deprecated     string `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Removed        string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// FieldSchema is one field declaration in a request, response, variant or
// block.
type FieldSchema struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Location is path, query, header or body (newtype). Absent means the
	// field is a member of the JSON object body.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	// Required defaults to true.
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	WireName string `json:"wire_name,omitempty" yaml:"wire_name,omitempty"`
	// Feature gates the field on a build-configuration feature flag; the
	// compiler drops the field unless the feature is enabled.
	Feature string `json:"feature,omitempty" yaml:"feature,omitempty"`
}

// ContentSchema describes a discriminated content payload: a tag field
// whose value selects which variant's sibling fields are present.
type ContentSchema struct {
	Name     string          `json:"name" yaml:"name"`
	TagField string          `json:"tag_field" yaml:"tag_field"`
	Variants []VariantSchema `json:"variants" yaml:"variants"`
	Blocks   []BlockSchema   `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// VariantSchema is one variant of a discriminated content payload.
type VariantSchema struct {
	Name     string        `json:"name" yaml:"name"`
	TagValue string        `json:"tag_value" yaml:"tag_value"`
	Fields   []FieldSchema `json:"fields" yaml:"fields"`
}

// BlockSchema is a named sub-object referenced by variant fields through
// the object:<Name> type.
type BlockSchema struct {
	Name   string        `json:"name" yaml:"name"`
	Fields []FieldSchema `json:"fields" yaml:"fields"`
}

// ParseError reports a schema description that is not structurally
// well-formed. The compiler cannot build an IR from it; other schemas are
// unaffected.
type ParseError struct {
	Name string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	name := e.Name
	if name == "" {
		name = "schema"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", name, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", name, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseSchemaFile decodes a schema file strictly: unknown sections or
// keys are ParseErrors, not silently dropped.
func ParseSchemaFile(data []byte, format Format) (*SchemaFile, error) {
	var sf SchemaFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sf); err != nil {
			return nil, &ParseError{Msg: "malformed schema", Err: err}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sf); err != nil {
			return nil, &ParseError{Msg: "malformed schema", Err: err}
		}
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unknown schema format %d", format)}
	}
	if (sf.Endpoint == nil) == (sf.Content == nil) {
		return nil, &ParseError{Msg: "a schema declares exactly one endpoint or content section"}
	}
	return &sf, nil
}
