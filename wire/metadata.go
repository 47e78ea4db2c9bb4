package wire

// AuthScheme declares how an endpoint authenticates its callers. It is
// advisory metadata: enforcement belongs to the transport layer.
type AuthScheme string

const (
	AuthNone            AuthScheme = "none"
	AuthAccessToken     AuthScheme = "access_token"
	AuthServerSignature AuthScheme = "server_signature"
)

// Metadata is the declarative record attached to every generated endpoint
// package. The compiler carries it verbatim from the schema; nothing here
// is enforced at call time.
type Metadata struct {
	Description string
	Method      string
	Name        string

	// LegacyPath and StablePath are the raw path templates the endpoint was
	// compiled against. At least one is always set.
	LegacyPath string
	StablePath string

	RateLimited    bool
	Authentication AuthScheme

	// Protocol versions the endpoint was introduced, deprecated and removed
	// in. Deprecated and Removed are empty while the endpoint is current.
	Introduced string
	Deprecated string
	Removed    string
}

// PathVersion selects which path template shape a marshaled request uses
// when an endpoint declares both a legacy and a stable template.
type PathVersion int

const (
	// PathStable selects the stable path template. It is the default.
	PathStable PathVersion = iota
	// PathLegacy selects the legacy path template.
	PathLegacy
)

// Path returns the raw path template for the requested version, falling
// back to the template that exists when the endpoint declares only one.
func (m Metadata) Path(v PathVersion) string {
	if v == PathLegacy && m.LegacyPath != "" {
		return m.LegacyPath
	}
	if m.StablePath != "" {
		return m.StablePath
	}
	return m.LegacyPath
}

// Options carries per-call marshaling choices.
type Options struct {
	PathVersion PathVersion
}

// Option mutates Options.
type Option func(*Options)

// WithPathVersion makes a generated binding render the request path with
// the given template version.
func WithPathVersion(v PathVersion) Option {
	return func(o *Options) {
		o.PathVersion = v
	}
}

// NewOptions folds opts over the default Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
