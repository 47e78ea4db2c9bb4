package wiregen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"

	"github.com/vincent-petithory/wiregen/wire"
)

// The templates available in a TemplateBundle.
const (
	TemplateEndpoint = "endpoint"
	TemplateContent  = "content"
)

var templatesMap = map[string]string{
	TemplateEndpoint: endpointTmpl,
	TemplateContent:  contentTmpl,
}

// TemplateNames returns the list of available templates without requiring
// a TemplateBundle instance.
func TemplateNames() []string {
	var a []string
	for name := range templatesMap {
		a = append(a, name)
	}
	sort.Strings(a)
	return a
}

// TemplateContext represents the context passed to a template.
type TemplateContext struct {
	Prgm    string // name of the program generating the source
	PkgName string // package name for which source code is generated

	// Endpoint is set for the endpoint template, Content for the content
	// template.
	Endpoint *Endpoint
	Content  *Content

	// ExistingTypes lists types already present in the target package;
	// generation skips re-emitting blocks with those names.
	ExistingTypes []string
}

// TemplateBundle is the bundle of templates generating the wiregen source
// files.
type TemplateBundle struct {
	t *template.Template
}

// NewTemplateBundle parses all builtin templates.
func NewTemplateBundle() (*TemplateBundle, error) {
	t := template.New("").Funcs(template.FuncMap{
		"tolower":    strings.ToLower,
		"capitalize": capitalize,
		"symbolName": symbolName,
		"quote":      strconv.Quote,
		"hasItem": func(a []string, s string) bool {
			return lo.Contains(a, s)
		},
		"goType": func(f FieldDescriptor) string {
			return f.GoType()
		},
		"jsonTag":         jsonTag,
		"ctorParams":      ctorParams,
		"authExpr":        authExpr,
		"needsJSON":       endpointNeedsJSON,
		"twoTemplates":    func(e *Endpoint) bool { return e.Legacy != nil && e.Stable != nil },
		"tagMethod":       func(c *Content) string { return symbolName(c.TagField) },
		"contentNeedsJSON": func(c *Content) bool {
			for _, v := range c.Variants {
				if fieldsNeedJSON(v.Fields) {
					return true
				}
			}
			for _, b := range c.Blocks {
				if fieldsNeedJSON(b.Fields) {
					return true
				}
			}
			return false
		},
		"renderPath":   renderPath,
		"pathDecode":   pathDecode,
		"queryEncode":  queryEncode,
		"queryDecode":  queryDecode,
		"headerEncode": headerEncode,
		"headerDecode": headerDecode,
		"bodyEncode":   bodyEncode,
		"bodyDecode":   bodyDecode,
		"errorDecode":  errorDecode,
	})
	for name, tmpl := range templatesMap {
		var err error
		t, err = t.New(name).Parse(tmpl)
		if err != nil {
			return nil, fmt.Errorf("template %s: %v", name, err)
		}
	}
	return &TemplateBundle{t: t}, nil
}

// ExecuteTemplate executes the template named by name, using the ctx
// TemplateContext.
func (t *TemplateBundle) ExecuteTemplate(wr io.Writer, name string, ctx *TemplateContext) error {
	return t.t.ExecuteTemplate(wr, name, ctx)
}

// Names returns the list of templates available in the bundle.
func (t *TemplateBundle) Names() []string {
	var a []string
	for _, tmpl := range t.t.Templates() {
		if tmpl.Name() == "" {
			continue
		}
		a = append(a, tmpl.Name())
	}
	sort.Strings(a)
	return a
}

// Generate executes the named template and gofmts the result. Generation
// aborts on the first error; no partial source is returned.
func (t *TemplateBundle) Generate(name string, ctx *TemplateContext) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, ctx); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s\n\ngofmt: %v", buf.Bytes(), err)
	}
	return src, nil
}

func fieldsNeedJSON(fields []FieldDescriptor) bool {
	return lo.SomeBy(fields, func(f FieldDescriptor) bool {
		return f.Type == TypeJSON
	})
}

func endpointNeedsJSON(e *Endpoint) bool {
	return fieldsNeedJSON(e.Request) || fieldsNeedJSON(e.Response)
}

// jsonTag prints the struct tag of a body member, carrying its wire key
// and omission policy.
func jsonTag(f FieldDescriptor) string {
	if f.Required {
		return "`json:" + strconv.Quote(f.Wire()) + "`"
	}
	return "`json:" + strconv.Quote(f.Wire()+",omitempty") + "`"
}

// ctorParams prints the parameter list of a generated constructor: every
// declared field, in declaration order.
func ctorParams(fields []FieldDescriptor) string {
	params := lo.Map(fields, func(f FieldDescriptor, _ int) string {
		return f.VarName() + " " + f.GoType()
	})
	return strings.Join(params, ", ")
}

func authExpr(a wire.AuthScheme) string {
	switch a {
	case wire.AuthAccessToken:
		return "wire.AuthAccessToken"
	case wire.AuthServerSignature:
		return "wire.AuthServerSignature"
	default:
		return "wire.AuthNone"
	}
}

// pathExpr prints the Go expression rendering a bound template: literal
// chunks concatenated with the pre-rendered segment variables.
func pathExpr(t *PathTemplate) string {
	var parts []string
	for _, s := range t.Segments {
		if s.IsVar() {
			parts = append(parts, "seg"+symbolName(s.Var))
			continue
		}
		parts = append(parts, strconv.Quote(s.Literal))
	}
	return strings.Join(parts, " + ")
}

// matchArgs prints the MatchPath pattern arguments of a template:
// literals verbatim, variables as "*" markers.
func matchArgs(t *PathTemplate) string {
	var parts []string
	for _, s := range t.Segments {
		if s.IsVar() {
			parts = append(parts, `"*"`)
			continue
		}
		parts = append(parts, strconv.Quote(s.Literal))
	}
	return strings.Join(parts, ", ")
}

// renderPath emits the path assignment of WireRequest. With both a legacy
// and a stable template bound, the caller's path-version option selects
// the shape; otherwise the single bound template is used unconditionally.
func renderPath(e *Endpoint) string {
	var b strings.Builder
	if e.Legacy != nil && e.Stable != nil {
		b.WriteString("\tswitch o.PathVersion {\n")
		b.WriteString("\tcase wire.PathLegacy:\n")
		fmt.Fprintf(&b, "\t\twr.Path = %s\n", pathExpr(e.Legacy))
		b.WriteString("\tdefault:\n")
		fmt.Fprintf(&b, "\t\twr.Path = %s\n", pathExpr(e.Stable))
		b.WriteString("\t}\n")
		return b.String()
	}
	t := e.Stable
	if t == nil {
		t = e.Legacy
	}
	fmt.Fprintf(&b, "\twr.Path = %s\n", pathExpr(t))
	return b.String()
}

// pathDecode emits the path matching and variable binding of
// RequestFromWire.
func pathDecode(e *Endpoint) string {
	var b strings.Builder
	nvars := len(e.PathFields())
	two := e.Legacy != nil && e.Stable != nil
	t := e.Stable
	if t == nil {
		t = e.Legacy
	}
	switch {
	case two && nvars > 0:
		b.WriteString("\to := wire.NewOptions(opts...)\n")
		b.WriteString("\tvar vals []string\n")
		b.WriteString("\tvar err error\n")
		b.WriteString("\tswitch o.PathVersion {\n")
		b.WriteString("\tcase wire.PathLegacy:\n")
		fmt.Fprintf(&b, "\t\tvals, err = wire.MatchPath(Metadata.Name, wr.Path, %s)\n", matchArgs(e.Legacy))
		b.WriteString("\tdefault:\n")
		fmt.Fprintf(&b, "\t\tvals, err = wire.MatchPath(Metadata.Name, wr.Path, %s)\n", matchArgs(e.Stable))
		b.WriteString("\t}\n")
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	case two:
		b.WriteString("\to := wire.NewOptions(opts...)\n")
		b.WriteString("\tvar err error\n")
		b.WriteString("\tswitch o.PathVersion {\n")
		b.WriteString("\tcase wire.PathLegacy:\n")
		fmt.Fprintf(&b, "\t\t_, err = wire.MatchPath(Metadata.Name, wr.Path, %s)\n", matchArgs(e.Legacy))
		b.WriteString("\tdefault:\n")
		fmt.Fprintf(&b, "\t\t_, err = wire.MatchPath(Metadata.Name, wr.Path, %s)\n", matchArgs(e.Stable))
		b.WriteString("\t}\n")
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	case nvars > 0:
		fmt.Fprintf(&b, "\tvals, err := wire.MatchPath(Metadata.Name, wr.Path, %s)\n", matchArgs(t))
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	default:
		fmt.Fprintf(&b, "\tif _, err := wire.MatchPath(Metadata.Name, wr.Path, %s); err != nil {\n\t\treturn nil, err\n\t}\n", matchArgs(t))
	}
	if nvars == 0 {
		return b.String()
	}
	// Bind captured values in template variable order. Both templates bind
	// the same variable set, so the stable order is authoritative.
	byName := make(map[string]FieldDescriptor, nvars)
	for _, f := range e.PathFields() {
		byName[f.Name] = f
	}
	for i, v := range t.Vars() {
		f := byName[v]
		switch f.Type {
		case TypeInteger:
			b.WriteString("\t{\n")
			fmt.Fprintf(&b, "\t\tn, err := wire.PathInt(Metadata.Name, %q, vals[%d])\n", f.Wire(), i)
			b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(&b, "\t\treq.%s = n\n", f.GoName())
			b.WriteString("\t}\n")
		case TypeBoolean:
			b.WriteString("\t{\n")
			fmt.Fprintf(&b, "\t\tv, err := wire.PathBool(Metadata.Name, %q, vals[%d])\n", f.Wire(), i)
			b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(&b, "\t\treq.%s = v\n", f.GoName())
			b.WriteString("\t}\n")
		default:
			fmt.Fprintf(&b, "\treq.%s = vals[%d]\n", f.GoName(), i)
		}
	}
	return b.String()
}

// queryEncode emits the encoding of one query field. Absent values are
// omitted from the query string entirely.
func queryEncode(f FieldDescriptor) string {
	var b strings.Builder
	add := func(indent, val string) {
		fmt.Fprintf(&b, "%sif err := wire.AddQueryParam(wr.Query, %q, %s); err != nil {\n", indent, f.Wire(), val)
		fmt.Fprintf(&b, "%s\treturn nil, err\n", indent)
		fmt.Fprintf(&b, "%s}\n", indent)
	}
	switch {
	case !f.Required:
		fmt.Fprintf(&b, "\tif r.%s != nil {\n", f.GoName())
		add("\t\t", "*r."+f.GoName())
		b.WriteString("\t}\n")
	case f.Type == TypeString:
		fmt.Fprintf(&b, "\tif r.%s != \"\" {\n", f.GoName())
		add("\t\t", "r."+f.GoName())
		b.WriteString("\t}\n")
	default:
		add("\t", "r."+f.GoName())
	}
	return b.String()
}

// queryDecode emits the decoding of one query field.
func queryDecode(f FieldDescriptor) string {
	var b strings.Builder
	name := f.GoName()
	switch {
	case f.Required && f.Type == TypeString:
		fmt.Fprintf(&b, "\treq.%s = wr.Query.Get(%q)\n", name, f.Wire())
	case f.Required && f.Type == TypeInteger:
		b.WriteString("\t{\n")
		fmt.Fprintf(&b, "\t\tn, err := wire.QueryInt(Metadata.Name, wr.Query, %q)\n", f.Wire())
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\treq.%s = n\n", name)
		b.WriteString("\t}\n")
	case f.Required && f.Type == TypeBoolean:
		b.WriteString("\t{\n")
		fmt.Fprintf(&b, "\t\tv, err := wire.QueryBool(Metadata.Name, wr.Query, %q)\n", f.Wire())
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\treq.%s = v\n", name)
		b.WriteString("\t}\n")
	case f.Type == TypeString:
		fmt.Fprintf(&b, "\tif v := wr.Query.Get(%q); v != \"\" {\n", f.Wire())
		fmt.Fprintf(&b, "\t\treq.%s = &v\n", name)
		b.WriteString("\t}\n")
	case f.Type == TypeInteger:
		fmt.Fprintf(&b, "\tif wr.Query.Has(%q) {\n", f.Wire())
		fmt.Fprintf(&b, "\t\tn, err := wire.QueryInt(Metadata.Name, wr.Query, %q)\n", f.Wire())
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\treq.%s = &n\n", name)
		b.WriteString("\t}\n")
	default:
		fmt.Fprintf(&b, "\tif wr.Query.Has(%q) {\n", f.Wire())
		fmt.Fprintf(&b, "\t\tv, err := wire.QueryBool(Metadata.Name, wr.Query, %q)\n", f.Wire())
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\treq.%s = &v\n", name)
		b.WriteString("\t}\n")
	}
	return b.String()
}

// headerEncode emits the encoding of one header field. Header fields are
// string-typed by validation.
func headerEncode(f FieldDescriptor, target, recv string) string {
	var b strings.Builder
	if f.Required {
		fmt.Fprintf(&b, "\t%s.Header.Set(%q, %s.%s)\n", target, f.Wire(), recv, f.GoName())
		return b.String()
	}
	fmt.Fprintf(&b, "\tif %s.%s != nil {\n", recv, f.GoName())
	fmt.Fprintf(&b, "\t\t%s.Header.Set(%q, *%s.%s)\n", target, f.Wire(), recv, f.GoName())
	b.WriteString("\t}\n")
	return b.String()
}

// headerDecode emits the decoding of one header field.
func headerDecode(f FieldDescriptor, source, recv string) string {
	var b strings.Builder
	if f.Required {
		b.WriteString("\t{\n")
		fmt.Fprintf(&b, "\t\tv, err := wire.RequiredHeader(Metadata.Name, %s.Header, %q)\n", source, f.Wire())
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\t%s.%s = v\n", recv, f.GoName())
		b.WriteString("\t}\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\tif v := %s.Header.Get(%q); v != \"\" {\n", source, f.Wire())
	fmt.Fprintf(&b, "\t\t%s.%s = &v\n", recv, f.GoName())
	b.WriteString("\t}\n")
	return b.String()
}

// bodyEncode emits the body assembly of WireRequest or WireResponse:
// newtype verbatim, a JSON object of the body members, or no body at all.
// An empty response still encodes as an empty object.
func bodyEncode(e *Endpoint, isRequest bool) string {
	fields := e.RequestBodyFields()
	newtype := e.RequestNewtype()
	target, recv := "wr", "r"
	if !isRequest {
		fields = e.ResponseBodyFields()
		newtype = e.ResponseNewtype()
		target = "wresp"
	}
	var b strings.Builder
	switch {
	case newtype != nil && newtype.Type == TypeJSON:
		fmt.Fprintf(&b, "\t%s.Body = append([]byte(nil), %s.%s...)\n", target, recv, newtype.GoName())
	case newtype != nil:
		fmt.Fprintf(&b, "\tb, err := wire.JSONBody(%s.%s)\n", recv, newtype.GoName())
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		fmt.Fprintf(&b, "\t%s.Body = b\n", target)
	case len(fields) > 0:
		b.WriteString("\tb, err := wire.JSONBody(struct {\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "\t\t%s %s %s\n", f.GoName(), f.GoType(), jsonTag(f))
		}
		b.WriteString("\t}{\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "\t\t%s: %s.%s,\n", f.GoName(), recv, f.GoName())
		}
		b.WriteString("\t})\n")
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		fmt.Fprintf(&b, "\t%s.Body = b\n", target)
	case !isRequest:
		fmt.Fprintf(&b, "\t%s.Body = []byte(\"{}\")\n", target)
	}
	return b.String()
}

// bodyDecode emits the body decoding of RequestFromWire or ParseResponse.
func bodyDecode(e *Endpoint, isRequest bool) string {
	fields := e.RequestBodyFields()
	newtype := e.RequestNewtype()
	source, recv := "wr", "req"
	if !isRequest {
		fields = e.ResponseBodyFields()
		newtype = e.ResponseNewtype()
		source, recv = "wresp", "resp"
	}
	var b strings.Builder
	switch {
	case newtype != nil && newtype.Type == TypeJSON:
		fmt.Fprintf(&b, "\tbody, err := wire.RawBody(Metadata.Name, %s.Body)\n", source)
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		fmt.Fprintf(&b, "\t%s.%s = body\n", recv, newtype.GoName())
	case newtype != nil:
		fmt.Fprintf(&b, "\tif err := wire.DecodeNewtypeBody(Metadata.Name, %s.Body, &%s.%s); err != nil {\n\t\treturn nil, err\n\t}\n", source, recv, newtype.GoName())
	case len(fields) > 0:
		b.WriteString("\tvar body struct {\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "\t\t%s %s %s\n", f.GoName(), f.GoType(), jsonTag(f))
		}
		b.WriteString("\t}\n")
		var required []string
		for _, f := range fields {
			if f.Required {
				required = append(required, strconv.Quote(f.Wire()))
			}
		}
		args := ""
		if len(required) > 0 {
			args = ", " + strings.Join(required, ", ")
		}
		fmt.Fprintf(&b, "\tif err := wire.DecodeJSONBody(Metadata.Name, %s.Body, &body%s); err != nil {\n\t\treturn nil, err\n\t}\n", source, args)
		for _, f := range fields {
			fmt.Fprintf(&b, "\t%s.%s = body.%s\n", recv, f.GoName(), f.GoName())
		}
	}
	return b.String()
}

// errorDecode emits the error-channel decoding of ParseResponse.
func errorDecode(e *Endpoint) string {
	var b strings.Builder
	if e.ErrorType == "wire.Error" {
		b.WriteString("\t\treturn nil, wire.DecodeDomainError(Metadata.Name, wresp)\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\t\tvar apiErr %s\n", e.ErrorType)
	b.WriteString("\t\tif err := wire.DecodeJSONBody(Metadata.Name, wresp.Body, &apiErr); err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
	b.WriteString("\t\treturn nil, &apiErr\n")
	return b.String()
}
