package wire

import (
	"fmt"

	"github.com/goccy/go-json"
)

// MarshalTagged encodes v as a JSON object and inserts the discriminating
// tag pair at the top level, next to v's own flattened keys. v is expected
// to be a plain struct whose tags already express the per-field omission
// policy, so absent optional sub-blocks never appear in the output.
func MarshalTagged(tagField, tagValue string, v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s variant %s: %w", tagField, tagValue, err)
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return nil, fmt.Errorf("encode %s variant %s: not an object: %w", tagField, tagValue, err)
	}
	if members == nil {
		members = make(map[string]json.RawMessage, 1)
	}
	tag, err := json.Marshal(tagValue)
	if err != nil {
		return nil, err
	}
	members[tagField] = tag
	return json.Marshal(members)
}

// UnmarshalTagged decodes data into v after checking that the
// discriminating tag is present and selects this variant.
func UnmarshalTagged(data []byte, tagField, tagValue string, v interface{}) error {
	tag, err := TagValue(data, tagField)
	if err != nil {
		return err
	}
	if tag != tagValue {
		return &DecodeError{Reason: fmt.Sprintf("%s is %q, want %q", tagField, tag, tagValue)}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("invalid %s variant %s: %v", tagField, tagValue, err)}
	}
	return nil
}

// TagValue extracts the discriminating tag value from an encoded variant.
func TagValue(data []byte, tagField string) (string, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return "", &DecodeError{Reason: fmt.Sprintf("tagged content is not an object: %v", err)}
	}
	raw, ok := members[tagField]
	if !ok {
		return "", &DecodeError{Reason: fmt.Sprintf("missing tag field %s", tagField)}
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", &DecodeError{Reason: fmt.Sprintf("tag field %s is not a string", tagField)}
	}
	return tag, nil
}
