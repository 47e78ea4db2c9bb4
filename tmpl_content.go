package wiregen

var contentTmpl = `// Code generated by {{ .Prgm }}; DO NOT EDIT.

package {{ .PkgName }}

import (
	"fmt"
{{ if contentNeedsJSON .Content }}
	"github.com/goccy/go-json"
{{ end }}
	"github.com/vincent-petithory/wiregen/wire"
)

// {{ .Content.Name }} is a discriminated content payload, keyed by the
// {{ .Content.TagField }} field.
type {{ .Content.Name }} interface {
	// {{ tagMethod .Content }} returns the discriminating {{ .Content.TagField }} value.
	{{ tagMethod .Content }}() string
}

// Decode{{ .Content.Name }} decodes an encoded content object into the
// variant selected by its {{ .Content.TagField }}.
func Decode{{ .Content.Name }}(data []byte) ({{ .Content.Name }}, error) {
	tag, err := wire.TagValue(data, {{ quote .Content.TagField }})
	if err != nil {
		return nil, err
	}
	switch tag {
{{- range .Content.Variants }}
	case {{ quote .TagValue }}:
		var c {{ .GoName }}
		if err := c.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return &c, nil
{{- end }}
	default:
		return nil, &wire.DecodeError{Reason: fmt.Sprintf("unknown {{ .Content.TagField }} %q", tag)}
	}
}
{{ range .Content.Variants }}
// {{ .GoName }} is the {{ .TagValue }} variant of {{ $.Content.Name }}.
type {{ .GoName }} struct {
{{- range .Fields }}
	{{ .GoName }} {{ goType . }} {{ jsonTag . }}
{{- end }}
}

// {{ tagMethod $.Content }} implements {{ $.Content.Name }}.
func (c *{{ .GoName }}) {{ tagMethod $.Content }}() string {
	return {{ quote .TagValue }}
}

// MarshalJSON flattens the variant fields next to the
// {{ $.Content.TagField }} tag; absent optional members are omitted
// entirely.
func (c {{ .GoName }}) MarshalJSON() ([]byte, error) {
	type plain {{ .GoName }}
	return wire.MarshalTagged({{ quote $.Content.TagField }}, {{ quote .TagValue }}, plain(c))
}

// UnmarshalJSON rejects data whose {{ $.Content.TagField }} does not match.
func (c *{{ .GoName }}) UnmarshalJSON(data []byte) error {
	type plain {{ .GoName }}
	return wire.UnmarshalTagged(data, {{ quote $.Content.TagField }}, {{ quote .TagValue }}, (*plain)(c))
}
{{ end }}
{{- range .Content.Blocks }}
{{- if not (hasItem $.ExistingTypes .GoName) }}
// {{ .GoName }} is the {{ .Name }} sub-object.
type {{ .GoName }} struct {
{{- range .Fields }}
	{{ .GoName }} {{ goType . }} {{ jsonTag . }}
{{- end }}
}
{{ end }}
{{- end }}
`
