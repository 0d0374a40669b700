package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	// ErrRequestLineTooLarge and ErrHeaderFieldsTooLarge both belong to the frame-too-large
	// class: a line didn't fit its limit before the terminator was met. They're fatal for
	// the connection.
	ErrRequestLineTooLarge  = NewError(RequestURITooLong, "request line is too long")
	ErrHeaderFieldsTooLarge = NewError(RequestHeaderFieldsTooLarge, "header line is too long")

	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")
	ErrMalformedHeader      = NewError(BadRequest, "malformed header line")
	ErrBadContentLength     = NewError(BadRequest, "bad content length")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrIncompleteMessage    = NewError(BadRequest, "connection closed in the middle of a message")

	// ErrUnsupportedBodyStrategy means the body phase was entered without a body decoder.
	// This is an internal invariant violation.
	ErrUnsupportedBodyStrategy = NewError(InternalServerError, "no body strategy selected")

	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
	ErrNotImplemented      = NewError(NotImplemented, "not implemented")
)

// IsFrameTooLarge reports whether err signals a line exceeding its limit.
func IsFrameTooLarge(err error) bool {
	return errors.Is(err, ErrRequestLineTooLarge) || errors.Is(err, ErrHeaderFieldsTooLarge)
}

// CodeOf extracts the status code carried by err. Errors which aren't an HTTPError
// map to 500 Internal Server Error.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}
