package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountDataRequest mirrors the binding generated for the account-data
// endpoint: three path fields and a verbatim JSON body.
type accountDataRequest struct {
	UserId    string
	RoomId    string
	EventType string
	Data      []byte
}

func (r *accountDataRequest) wireRequest(t *testing.T) *Request {
	t.Helper()
	wr := NewRequest("PUT")
	segUserId, err := PathSegment("user_id", r.UserId)
	require.NoError(t, err)
	segRoomId, err := PathSegment("room_id", r.RoomId)
	require.NoError(t, err)
	segEventType, err := PathSegment("event_type", r.EventType)
	require.NoError(t, err)
	wr.Path = "/_matrix/client/v3/user/" + segUserId + "/rooms/" + segRoomId + "/account_data/" + segEventType
	wr.Body = append([]byte(nil), r.Data...)
	return wr
}

func accountDataFromWire(t *testing.T, wr *Request) *accountDataRequest {
	t.Helper()
	vals, err := MatchPath("set_room_account_data", wr.Path,
		"/_matrix/client/v3/user/", "*", "/rooms/", "*", "/account_data/", "*")
	require.NoError(t, err)
	require.Len(t, vals, 3)
	body, err := RawBody("set_room_account_data", wr.Body)
	require.NoError(t, err)
	return &accountDataRequest{
		UserId:    vals[0],
		RoomId:    vals[1],
		EventType: vals[2],
		Data:      body,
	}
}

func TestAccountDataRoundTrip(t *testing.T) {
	req := &accountDataRequest{
		UserId:    "@alice:example.org",
		RoomId:    "!abc:example.org",
		EventType: "m.custom",
		Data:      []byte(`{"x":1}`),
	}

	wr := req.wireRequest(t)
	assert.Equal(t, "PUT", wr.Method)
	// room and user identifiers keep their literal bytes in the path
	assert.Equal(t, "/_matrix/client/v3/user/@alice:example.org/rooms/!abc:example.org/account_data/m.custom", wr.Path)
	assert.Equal(t, `{"x":1}`, string(wr.Body))

	got := accountDataFromWire(t, wr)
	if diff := cmp.Diff(req, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
