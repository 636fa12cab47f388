package journal

import "errors"

// Error taxonomy for the REST client. Every failed operation returns one of
// these sentinels, usually wrapped with context (status code, operation), so
// callers branch with errors.Is instead of inspecting status codes.
//
// Transport-level failures (no HTTP response at all) are NOT part of this
// taxonomy: the underlying error from net/http propagates unchanged.
var (
	// ErrInvalidURL reports a malformed endpoint. With a base URL that
	// parsed at construction time this is effectively unreachable.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidResponse reports a status outside every classified range,
	// or a 204 on an operation that expects a body.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrAuthentication reports HTTP 401.
	ErrAuthentication = errors.New("authentication error")

	// ErrBadRequest reports any 4xx other than 401.
	ErrBadRequest = errors.New("bad request")

	// ErrServer reports any 5xx.
	ErrServer = errors.New("server error")

	// ErrDecoding reports a 2xx response whose body did not decode into the
	// expected result type. Distinct from transport and server failures so
	// the UI can tell "the call worked but the payload is wrong" apart from
	// "the call failed".
	ErrDecoding = errors.New("decoding error")

	// ErrInvalidCredentials is the login-specific remap of ErrBadRequest and
	// ErrAuthentication, so callers can render "invalid username or
	// password" without branching on status codes themselves.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
