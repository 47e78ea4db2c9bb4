package wiregen

var endpointTmpl = `// Code generated by {{ .Prgm }}; DO NOT EDIT.

package {{ .PkgName }}

import (
{{- if needsJSON .Endpoint }}
	"github.com/goccy/go-json"
{{ end }}
	"github.com/vincent-petithory/wiregen/wire"
)

// Metadata describes the {{ .Endpoint.Metadata.Name }} endpoint.
var Metadata = wire.Metadata{
	Description:    {{ quote .Endpoint.Metadata.Description }},
	Method:         {{ quote .Endpoint.Metadata.Method }},
	Name:           {{ quote .Endpoint.Metadata.Name }},
{{- if .Endpoint.Metadata.LegacyPath }}
	LegacyPath:     {{ quote .Endpoint.Metadata.LegacyPath }},
{{- end }}
{{- if .Endpoint.Metadata.StablePath }}
	StablePath:     {{ quote .Endpoint.Metadata.StablePath }},
{{- end }}
	RateLimited:    {{ .Endpoint.Metadata.RateLimited }},
	Authentication: {{ authExpr .Endpoint.Metadata.Authentication }},
{{- if .Endpoint.Metadata.Introduced }}
	Introduced:     {{ quote .Endpoint.Metadata.Introduced }},
{{- end }}
{{- if .Endpoint.Metadata.Deprecated }}
	Deprecated:     {{ quote .Endpoint.Metadata.Deprecated }},
{{- end }}
{{- if .Endpoint.Metadata.Removed }}
	Removed:        {{ quote .Endpoint.Metadata.Removed }},
{{- end }}
}

// Request holds the request fields of {{ .Endpoint.Metadata.Name }}.
type Request struct {
{{- range .Endpoint.Request }}
	{{ .GoName }} {{ goType . }}
{{- end }}
}

// NewRequest builds a Request from all declared fields, in declaration
// order.
func NewRequest({{ ctorParams .Endpoint.Request }}) *Request {
	return &Request{
{{- range .Endpoint.Request }}
		{{ .GoName }}: {{ .VarName }},
{{- end }}
	}
}

// WireRequest marshals the request into its abstract wire form.
func (r *Request) WireRequest(opts ...wire.Option) (*wire.Request, error) {
{{- if twoTemplates .Endpoint }}
	o := wire.NewOptions(opts...)
{{- end }}
	wr := wire.NewRequest(Metadata.Method)
{{- range .Endpoint.PathFields }}
	seg{{ .GoName }}, err := wire.PathSegment({{ quote .Wire }}, r.{{ .GoName }})
	if err != nil {
		return nil, err
	}
{{- end }}
{{ renderPath .Endpoint }}
{{- range .Endpoint.QueryFields }}
{{ queryEncode . }}
{{- end }}
{{- range .Endpoint.RequestHeaderFields }}
{{ headerEncode . "wr" "r" }}
{{- end }}
{{ bodyEncode .Endpoint true }}
	return wr, nil
}

// RequestFromWire decodes a wire request shaped for this endpoint back
// into a Request.
func RequestFromWire(wr *wire.Request, opts ...wire.Option) (*Request, error) {
	req := &Request{}
{{ pathDecode .Endpoint }}
{{- range .Endpoint.QueryFields }}
{{ queryDecode . }}
{{- end }}
{{- range .Endpoint.RequestHeaderFields }}
{{ headerDecode . "wr" "req" }}
{{- end }}
{{ bodyDecode .Endpoint true }}
	return req, nil
}

// Response holds the response fields of {{ .Endpoint.Metadata.Name }}.
type Response struct {
{{- range .Endpoint.Response }}
	{{ .GoName }} {{ goType . }}
{{- end }}
}

// NewResponse builds a Response from all declared fields, in declaration
// order.
func NewResponse({{ ctorParams .Endpoint.Response }}) *Response {
	return &Response{
{{- range .Endpoint.Response }}
		{{ .GoName }}: {{ .VarName }},
{{- end }}
	}
}

// WireResponse marshals the response into its abstract wire form with a
// success status.
func (r *Response) WireResponse() (*wire.Response, error) {
	wresp := wire.NewResponse(200)
{{- range .Endpoint.ResponseHeaderFields }}
{{ headerEncode . "wresp" "r" }}
{{- end }}
{{ bodyEncode .Endpoint false }}
	return wresp, nil
}

// ParseResponse decodes a wire response for this endpoint. An error-class
// status routes the body to the endpoint error type, never to Response.
func ParseResponse(wresp *wire.Response) (*Response, error) {
	if wire.IsErrorStatus(wresp.StatusCode) {
{{ errorDecode .Endpoint }}
	}
	resp := &Response{}
{{- range .Endpoint.ResponseHeaderFields }}
{{ headerDecode . "wresp" "resp" }}
{{- end }}
{{ bodyDecode .Endpoint false }}
	return resp, nil
}
`
