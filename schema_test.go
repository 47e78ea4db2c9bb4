package wiregen

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemaFileJSON(t *testing.T) {
	data, err := os.ReadFile("testdata/set_room_account_data.json")
	require.NoError(t, err)

	sf, err := ParseSchemaFile(data, FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, sf.Endpoint)
	assert.Nil(t, sf.Content)
	assert.Equal(t, "set_room_account_data", sf.Endpoint.Metadata.Name)
	assert.Len(t, sf.Endpoint.Request, 4)
	assert.Empty(t, sf.Endpoint.Response)
}

func TestParseSchemaFileYAML(t *testing.T) {
	data, err := os.ReadFile("testdata/message_content.yaml")
	require.NoError(t, err)

	sf, err := ParseSchemaFile(data, FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, sf.Content)
	assert.Nil(t, sf.Endpoint)
	assert.Equal(t, "msgtype", sf.Content.TagField)
	assert.Len(t, sf.Content.Variants, 2)
	assert.Len(t, sf.Content.Blocks, 2)
}

func TestParseSchemaFileStrict(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown section", `{"endpoints": {}}`},
		{"unknown metadata key", `{"endpoint": {"metadata": {"name": "x", "methodd": "GET"}}}`},
		{"unknown field key", `{"endpoint": {"metadata": {"name": "x", "method": "GET", "stable_path": "/x"}, "request": [{"name": "a", "type": "string", "loc": "path"}]}}`},
		{"not json", `endpoint:`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchemaFile([]byte(tt.data), FormatJSON)
			require.Error(t, err)
			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParseSchemaFileOneSection(t *testing.T) {
	_, err := ParseSchemaFile([]byte(`{}`), FormatJSON)
	require.Error(t, err)

	both := `{"endpoint": {"metadata": {"name": "x", "method": "GET", "stable_path": "/x"}}, "content": {"name": "y", "tag_field": "t", "variants": []}}`
	_, err = ParseSchemaFile([]byte(both), FormatJSON)
	require.Error(t, err)
}
