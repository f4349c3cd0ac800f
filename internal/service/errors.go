package service

import "errors"

// Lookup failure classes. Backends wrap one of these.
var (
	// ErrMalformedRequest means the request URL could not be built.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrTransport means the request failed or returned a non-2xx status.
	ErrTransport = errors.New("transport failure")

	// ErrDecode means the response did not contain an image URL.
	ErrDecode = errors.New("decode failure")
)

// FailureKind returns a short name for the failure class of err,
// or "unknown" when err wraps none of the sentinels.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedRequest):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}
