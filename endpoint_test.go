package wiregen

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincent-petithory/wiregen/wire"
)

func parseTestdata(t *testing.T, path string, format Format) *SchemaFile {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	sf, err := ParseSchemaFile(data, format)
	require.NoError(t, err)
	return sf
}

func TestCompileEndpoint(t *testing.T) {
	c := &Compiler{}
	sf := parseTestdata(t, "testdata/set_room_account_data.json", FormatJSON)
	e, err := c.Compile(sf.Endpoint)
	require.NoError(t, err)

	assert.Equal(t, "PUT", e.Metadata.Method)
	assert.Equal(t, "set_room_account_data", e.Metadata.Name)
	assert.Equal(t, wire.AuthAccessToken, e.Metadata.Authentication)
	assert.Equal(t, "1.0", e.Metadata.Introduced)
	assert.Equal(t, "setroomaccountdata", e.PkgName())
	assert.Equal(t, "wire.Error", e.ErrorType)

	require.NotNil(t, e.Legacy)
	require.NotNil(t, e.Stable)
	assert.Equal(t, []string{"user_id", "room_id", "event_type"}, e.Stable.Vars())

	pf := e.PathFields()
	require.Len(t, pf, 3)
	assert.Equal(t, "user_id", pf[0].Name)

	nt := e.RequestNewtype()
	require.NotNil(t, nt)
	assert.Equal(t, TypeJSON, nt.Type)
	assert.Empty(t, e.RequestBodyFields())
	assert.Empty(t, e.Response)
}

func TestCompileEndpointQueryFields(t *testing.T) {
	c := &Compiler{}
	sf := parseTestdata(t, "testdata/list_room_messages.json", FormatJSON)
	e, err := c.Compile(sf.Endpoint)
	require.NoError(t, err)

	assert.Equal(t, "GET", e.Metadata.Method)
	qf := e.QueryFields()
	// the filter field is gated on a disabled feature
	require.Len(t, qf, 4)
	assert.Equal(t, "from", qf[0].Name)
	assert.False(t, qf[0].Required)
	assert.Equal(t, "dir", qf[2].Name)
	assert.True(t, qf[2].Required)

	rb := e.ResponseBodyFields()
	require.Len(t, rb, 4)
	assert.Nil(t, e.ResponseNewtype())
}

func TestCompileEndpointFeatures(t *testing.T) {
	c := &Compiler{Features: []string{"server-side-filter"}}
	sf := parseTestdata(t, "testdata/list_room_messages.json", FormatJSON)
	e, err := c.Compile(sf.Endpoint)
	require.NoError(t, err)
	require.Len(t, e.QueryFields(), 5)
	assert.Equal(t, "filter", e.QueryFields()[4].Name)
}

func TestCompileEndpointMetadataErrors(t *testing.T) {
	base := func() *EndpointSchema {
		return &EndpointSchema{
			Metadata: MetadataSchema{
				Name:       "whoami",
				Method:     "GET",
				StablePath: "/_matrix/client/v3/account/whoami",
			},
		}
	}
	tests := []struct {
		name   string
		mutate func(*EndpointSchema)
	}{
		{"missing name", func(s *EndpointSchema) { s.Metadata.Name = "" }},
		{"invalid name", func(s *EndpointSchema) { s.Metadata.Name = "who-ami" }},
		{"unknown method", func(s *EndpointSchema) { s.Metadata.Method = "FETCH" }},
		{"no paths", func(s *EndpointSchema) { s.Metadata.StablePath = "" }},
		{"unknown auth", func(s *EndpointSchema) { s.Metadata.Authentication = "mtls" }},
		{"bad template", func(s *EndpointSchema) { s.Metadata.StablePath = "no-slash" }},
	}
	c := &Compiler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			_, err := c.Compile(s)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestCompileEndpointBindErrors(t *testing.T) {
	c := &Compiler{}
	s := &EndpointSchema{
		Metadata: MetadataSchema{
			Name:       "get_event",
			Method:     "GET",
			StablePath: "/rooms/:room_id/event/:event_id",
		},
		Request: []FieldSchema{
			{Name: "room_id", Type: "string", Location: "path"},
		},
	}
	_, err := c.Compile(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnboundPathVariable, verr.Kind)
}

func TestCompileEndpointMethodCase(t *testing.T) {
	c := &Compiler{}
	e, err := c.Compile(&EndpointSchema{
		Metadata: MetadataSchema{Name: "whoami", Method: "get", StablePath: "/whoami"},
	})
	require.NoError(t, err)
	assert.Equal(t, "GET", e.Metadata.Method)
}

func TestCompileContent(t *testing.T) {
	c := &Compiler{}
	sf := parseTestdata(t, "testdata/message_content.yaml", FormatYAML)
	ct, err := c.CompileContent(sf.Content)
	require.NoError(t, err)

	assert.Equal(t, "MessageEventContent", ct.Name)
	assert.Equal(t, "msgtype", ct.TagField)
	require.Len(t, ct.Variants, 2)

	audio := ct.Variants[0]
	assert.Equal(t, "AudioContent", audio.GoName())
	assert.Equal(t, "m.audio", audio.TagValue)
	// the voice field is gated on a disabled feature
	require.Len(t, audio.Fields, 4)
	assert.Equal(t, "*EncryptedFile", audio.Fields[2].GoType())

	require.Len(t, ct.Blocks, 2)
	assert.Equal(t, "AudioInfo", ct.Blocks[0].GoName())
}

func TestCompileContentFeatures(t *testing.T) {
	c := &Compiler{Features: []string{"msc3245-voice"}}
	sf := parseTestdata(t, "testdata/message_content.yaml", FormatYAML)
	ct, err := c.CompileContent(sf.Content)
	require.NoError(t, err)
	require.Len(t, ct.Variants[0].Fields, 5)
	assert.Equal(t, "voice", ct.Variants[0].Fields[4].Name)
}

func TestCompileContentErrors(t *testing.T) {
	c := &Compiler{}
	tests := []struct {
		name string
		s    *ContentSchema
	}{
		{"missing name", &ContentSchema{TagField: "msgtype", Variants: []VariantSchema{{Name: "a", TagValue: "m.a"}}}},
		{"missing tag field", &ContentSchema{Name: "c", Variants: []VariantSchema{{Name: "a", TagValue: "m.a"}}}},
		{"no variants", &ContentSchema{Name: "c", TagField: "msgtype"}},
		{"missing tag value", &ContentSchema{Name: "c", TagField: "msgtype", Variants: []VariantSchema{{Name: "a"}}}},
		{
			"duplicate tag value",
			&ContentSchema{Name: "c", TagField: "msgtype", Variants: []VariantSchema{
				{Name: "a", TagValue: "m.a"},
				{Name: "b", TagValue: "m.a"},
			}},
		},
		{
			"location on content field",
			&ContentSchema{Name: "c", TagField: "msgtype", Variants: []VariantSchema{
				{Name: "a", TagValue: "m.a", Fields: []FieldSchema{{Name: "f", Type: "string", Location: "query"}}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CompileContent(tt.s)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}
