package client

import "errors"

// Response and transport failure modes. All are recoverable-by-caller value
// errors; the client never prints or exits. Partial failures abort the whole
// entity construction, entities are all-or-nothing.
var (
	// ErrMissingField marks a response lacking a required JSON field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField marks a response field whose value is outside its
	// domain, such as an unknown window code.
	ErrInvalidField = errors.New("invalid field value")
	// ErrLengthMismatch marks a trend response whose decoded arrays are
	// not all the same length.
	ErrLengthMismatch = errors.New("trend arrays have mismatched lengths")
	// ErrHTTPStatus marks a non-2xx HTTP response; the status code is part
	// of the wrapped message.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrUnreachable marks a connection failure with no HTTP response.
	ErrUnreachable = errors.New("host unreachable")
)
