package wire

import "fmt"

// ErrDecode is a sentinel for use with errors.Is to check whether any error
// in a chain is a *DecodeError.
var ErrDecode = &DecodeError{}

// DecodeError reports a wire response or request that could not be decoded
// into the shape an endpoint declares: a missing required body member, an
// absent required header, a body invalid for the declared strategy.
//
// It is a marshaling failure, distinct from a domain error, which is a
// successfully decoded error payload.
type DecodeError struct {
	Endpoint string
	Reason   string
}

func (e *DecodeError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("%s: decode: %s", e.Endpoint, e.Reason)
}

// Is supports errors.Is by matching any *DecodeError target.
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// IsErrorStatus reports whether a response status code selects the error
// decoding channel of an endpoint. Any non-success class (>= 400) does.
func IsErrorStatus(code int) bool {
	return code >= 400
}

// Error is the default domain error payload, decoded from a non-success
// response when an endpoint declares no specific error type.
type Error struct {
	Code    string `json:"errcode"`
	Message string `json:"error"`

	// StatusCode is the wire status the payload arrived with.
	StatusCode int `json:"-"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DecodeDomainError decodes the default error payload from an error-class
// response. A payload that does not decode yields a DecodeError instead.
func DecodeDomainError(endpoint string, resp *Response) error {
	var apiErr Error
	if err := DecodeJSONBody(endpoint, resp.Body, &apiErr); err != nil {
		return err
	}
	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
