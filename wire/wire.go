package wire

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Request is the abstract boundary form of an outbound endpoint request.
// A nil Body means the request carries no body at all.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// NewRequest returns a Request for the given method with empty query and
// header collections, ready to be filled by a generated binding.
func NewRequest(method string) *Request {
	return &Request{
		Method: method,
		Query:  url.Values{},
		Header: http.Header{},
	}
}

// URL assembles the path and encoded query string of the request.
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// Response is the abstract boundary form of an inbound endpoint response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponse returns a Response with the given status and an empty
// header collection.
func NewResponse(status int) *Response {
	return &Response{
		StatusCode: status,
		Header:     http.Header{},
	}
}

// PathSegment renders a single value into one URL path segment. String
// values keep their literal bytes: identifiers like !room:server or
// @user:server travel unescaped, and MatchPath hands them back verbatim.
// Percent-escaping, where a transport needs it, is the transport's concern.
// The value must be representable as a single segment; this is guaranteed
// for path-tagged fields by schema validation.
func PathSegment(name string, value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	s, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("path segment %s: %w", name, err)
	}
	// the simple style percent-escapes path values; undo it so rendering
	// stays byte-exact for every type
	unescaped, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("path segment %s: %w", name, err)
	}
	return unescaped, nil
}

// AddQueryParam renders value in form style and merges the resulting pairs
// into q under name.
func AddQueryParam(q url.Values, name string, value interface{}) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("query param %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("query param %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return nil
}

// MatchPath matches path against a pattern of alternating literals and "*"
// variable markers, as emitted by the endpoint generator. It returns the
// captured variable values in order. A variable never spans more than one
// path segment.
func MatchPath(endpoint, path string, pattern ...string) ([]string, error) {
	rest := path
	vals := make([]string, 0, len(pattern)/2)
	for i, p := range pattern {
		if p != "*" {
			if !strings.HasPrefix(rest, p) {
				return nil, pathMismatch(endpoint, path)
			}
			rest = rest[len(p):]
			continue
		}
		var v string
		if i+1 < len(pattern) {
			idx := strings.Index(rest, pattern[i+1])
			if idx < 0 {
				return nil, pathMismatch(endpoint, path)
			}
			v, rest = rest[:idx], rest[idx:]
		} else {
			v, rest = rest, ""
		}
		if v == "" || strings.Contains(v, "/") {
			return nil, pathMismatch(endpoint, path)
		}
		vals = append(vals, v)
	}
	if rest != "" {
		return nil, pathMismatch(endpoint, path)
	}
	return vals, nil
}

func pathMismatch(endpoint, path string) error {
	return &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("path %q does not match the endpoint path shape", path)}
}

// PathInt parses a captured path variable as an integer.
func PathInt(endpoint, name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("path variable %s: %q is not an integer", name, raw)}
	}
	return n, nil
}

// PathBool parses a captured path variable as a boolean.
func PathBool(endpoint, name, raw string) (bool, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("path variable %s: %q is not a boolean", name, raw)}
	}
	return b, nil
}

// QueryInt parses the query value under name as an integer.
func QueryInt(endpoint string, q url.Values, name string) (int, error) {
	raw := q.Get(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("query param %s: %q is not an integer", name, raw)}
	}
	return n, nil
}

// QueryBool parses the query value under name as a boolean.
func QueryBool(endpoint string, q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("query param %s: %q is not a boolean", name, raw)}
	}
	return b, nil
}

// RequiredHeader returns the value of a required header, or a DecodeError
// if the header is absent.
func RequiredHeader(endpoint string, h http.Header, name string) (string, error) {
	v := h.Get(name)
	if v == "" {
		return "", &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("missing required header %s", name)}
	}
	return v, nil
}
