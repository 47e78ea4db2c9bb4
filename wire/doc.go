// Package wire holds the abstract request/response representation exchanged
// with a transport layer, and the marshaling helpers the generated endpoint
// bindings are built on.
//
// A wire.Request is the already-marshaled form of an endpoint request: method,
// resolved path, query pairs, headers and body bytes. A wire.Response is the
// raw form an endpoint response or error is decoded from. Neither type knows
// anything about HTTP connections; moving them over a network is the job of
// whatever transport the caller plugs in.
//
// All functions in this package are pure: they read and write only their
// arguments, so concurrent use needs no synchronization.
package wire
