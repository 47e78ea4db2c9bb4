package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type audioInfo struct {
	Duration *int    `json:"duration,omitempty"`
	Mimetype *string `json:"mimetype,omitempty"`
}

type audioContent struct {
	Body string     `json:"body"`
	URL  *string    `json:"url,omitempty"`
	Info *audioInfo `json:"info,omitempty"`
}

func TestMarshalTagged(t *testing.T) {
	u := "mxc://example.org/AuDi0"
	b, err := MarshalTagged("msgtype", "m.audio", audioContent{Body: "Bee Gees", URL: &u})
	require.NoError(t, err)
	assert.JSONEq(t, `{"msgtype":"m.audio","body":"Bee Gees","url":"mxc://example.org/AuDi0"}`, string(b))
}

func TestMarshalTaggedOmitsAbsentBlocks(t *testing.T) {
	b, err := MarshalTagged("msgtype", "m.audio", audioContent{Body: "Bee Gees"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"msgtype":"m.audio","body":"Bee Gees"}`, string(b))
	assert.NotContains(t, string(b), "info")
	assert.NotContains(t, string(b), "url")
	assert.NotContains(t, string(b), "null")
}

func TestUnmarshalTagged(t *testing.T) {
	data := []byte(`{"msgtype":"m.audio","body":"Bee Gees","info":{"duration":2140786,"mimetype":"audio/mp3"}}`)
	var c audioContent
	require.NoError(t, UnmarshalTagged(data, "msgtype", "m.audio", &c))
	assert.Equal(t, "Bee Gees", c.Body)
	assert.Nil(t, c.URL)
	require.NotNil(t, c.Info)
	require.NotNil(t, c.Info.Duration)
	assert.Equal(t, 2140786, *c.Info.Duration)
}

func TestUnmarshalTaggedWrongTag(t *testing.T) {
	data := []byte(`{"msgtype":"m.text","body":"hi"}`)
	var c audioContent
	err := UnmarshalTagged(data, "msgtype", "m.audio", &c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTagValue(t *testing.T) {
	tag, err := TagValue([]byte(`{"msgtype":"m.audio"}`), "msgtype")
	require.NoError(t, err)
	assert.Equal(t, "m.audio", tag)

	_, err = TagValue([]byte(`{"body":"hi"}`), "msgtype")
	assert.ErrorIs(t, err, ErrDecode)

	_, err = TagValue([]byte(`{"msgtype":3}`), "msgtype")
	assert.ErrorIs(t, err, ErrDecode)

	_, err = TagValue([]byte(`[]`), "msgtype")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTaggedRoundTrip(t *testing.T) {
	d, m := 2140786, "audio/mp3"
	in := audioContent{Body: "Bee Gees", Info: &audioInfo{Duration: &d, Mimetype: &m}}
	b, err := MarshalTagged("msgtype", "m.audio", in)
	require.NoError(t, err)

	var out audioContent
	require.NoError(t, UnmarshalTagged(b, "msgtype", "m.audio", &out))
	assert.Equal(t, in, out)
}
