package wiregen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathTemplate(t *testing.T) {
	tmpl, err := ParsePathTemplate("/_matrix/client/v3/user/:user_id/rooms/:room_id/account_data/:event_type")
	require.NoError(t, err)

	want := []Segment{
		{Literal: "/_matrix/client/v3/user/"},
		{Var: "user_id"},
		{Literal: "/rooms/"},
		{Var: "room_id"},
		{Literal: "/account_data/"},
		{Var: "event_type"},
	}
	if diff := cmp.Diff(want, tmpl.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"user_id", "room_id", "event_type"}, tmpl.Vars())
}

func TestParsePathTemplateTrailingLiteral(t *testing.T) {
	tmpl, err := ParsePathTemplate("/rooms/:room_id/messages")
	require.NoError(t, err)
	want := []Segment{
		{Literal: "/rooms/"},
		{Var: "room_id"},
		{Literal: "/messages"},
	}
	if diff := cmp.Diff(want, tmpl.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathTemplateErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"rooms/:room_id",
		"/rooms//messages",
		"/rooms/:",
		"/rooms/:9bad",
	} {
		_, err := ParsePathTemplate(raw)
		assert.Error(t, err, "template %q", raw)
	}
}

func TestRender(t *testing.T) {
	tmpl, err := ParsePathTemplate("/user/:user_id/rooms/:room_id/account_data/:event_type")
	require.NoError(t, err)

	path, err := tmpl.Render([]string{"@alice:example.org", "!abc:example.org", "m.custom"})
	require.NoError(t, err)
	assert.Equal(t, "/user/@alice:example.org/rooms/!abc:example.org/account_data/m.custom", path)

	_, err = tmpl.Render([]string{"@alice:example.org"})
	assert.Error(t, err)
}

func pathField(name string) FieldDescriptor {
	return FieldDescriptor{Name: name, Type: TypeString, Location: LocationPath, Required: true}
}

func TestBindPath(t *testing.T) {
	// declaration order differs from template order; binding is by name
	fields := []FieldDescriptor{
		pathField("room_id"),
		pathField("event_type"),
		pathField("user_id"),
	}
	tmpl, err := ParsePathTemplate("/user/:user_id/rooms/:room_id/account_data/:event_type")
	require.NoError(t, err)
	require.NoError(t, bindPath("e", tmpl, fields))
}

func TestBindPathErrors(t *testing.T) {
	fields := []FieldDescriptor{pathField("room_id"), pathField("user_id")}

	tests := []struct {
		name string
		raw  string
		kind ValidationKind
	}{
		{"unknown variable", "/user/:user_id/rooms/:other_id", UnboundPathVariable},
		{"duplicate variable", "/user/:user_id/rooms/:user_id", UnboundPathVariable},
		{"missing variable", "/user/:user_id/rooms", TemplateMismatch},
		{"extra variable", "/user/:user_id/rooms/:room_id/events/:event_id", UnboundPathVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParsePathTemplate(tt.raw)
			require.NoError(t, err)
			err = bindPath("e", tmpl, fields)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.kind, verr.Kind)
		})
	}
}
