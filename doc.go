// Package wiregen implements code generation of typed HTTP-RPC bindings
// written in Go. The generated code is based on declarative endpoint and
// content schemas, in JSON or YAML.
//
// Its primary use is through go:generate, but it's also possible to invoke
// the wiregen command directly, or use this package in your code.
//
// # Schemas
//
// Usage of this package usually begins with parsing a schema file and
// compiling the sections it contains:
//
//	sf, err := wiregen.ParseSchemaFile(data, wiregen.FormatJSON)
//	// ...
//	c := &wiregen.Compiler{}
//	endpoint, err := c.Compile(sf.Endpoint)
//	// ...
//
// Compilation classifies every declared field into its wire location
// (path, query, header, body member or newtype body), validates the
// cross-field invariants and binds the path templates to the path fields.
// The result is an immutable endpoint description ready for generation.
//
// # Templates
//
// The TemplateBundle type is a bundle of the builtin templates; all of
// them use the same template context:
//
//	tmpl, err := wiregen.NewTemplateBundle()
//	// ...
//	ctx := &wiregen.TemplateContext{
//		Prgm:     "wiregen",
//		PkgName:  endpoint.PkgName(),
//		Endpoint: endpoint,
//	}
//	src, err := tmpl.Generate(wiregen.TemplateEndpoint, ctx)
//	// ...
//
// The generated packages depend only on the wire subpackage, which holds
// the abstract request and response forms and the marshaling helpers the
// bindings call at run time. Nothing in the generated code touches a
// network; transport is the caller's concern.
//
// For a more detailed usage of this package, take a look at the tests and
// cmd/wiregen source.
package wiregen
