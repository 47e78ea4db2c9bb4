package wire

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSONBody marshals v into body bytes. Generated bindings call it with a
// struct whose tags carry the omit-if-absent policy of each body member.
func JSONBody(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return b, nil
}

// DecodeJSONBody unmarshals an object body into v, after checking that all
// required member keys are present. A missing key, or a body that is not a
// valid object for the target, yields a DecodeError. An empty body is
// accepted as an empty object when nothing is required.
func DecodeJSONBody(endpoint string, body []byte, v interface{}, required ...string) error {
	if len(body) == 0 {
		if len(required) == 0 {
			return nil
		}
		return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("missing required body member %s", required[0])}
	}
	if len(required) > 0 {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(body, &members); err != nil {
			return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("body is not a JSON object: %v", err)}
		}
		for _, k := range required {
			if _, ok := members[k]; !ok {
				return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("missing required body member %s", k)}
			}
		}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("invalid body: %v", err)}
	}
	return nil
}

// DecodeNewtypeBody unmarshals an entire body as the single newtype field
// value v.
func DecodeNewtypeBody(endpoint string, body []byte, v interface{}) error {
	if len(body) == 0 {
		return &DecodeError{Endpoint: endpoint, Reason: "missing body"}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("invalid body: %v", err)}
	}
	return nil
}

// RawBody returns a copy of body for verbatim newtype fields, rejecting an
// absent body.
func RawBody(endpoint string, body []byte) (json.RawMessage, error) {
	if len(body) == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "missing body"}
	}
	return append(json.RawMessage(nil), body...), nil
}
