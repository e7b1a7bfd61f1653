package hxbox

import "errors"

// Sentinel errors for box operations.
var (
	ErrInvalidOptions   = errors.New("hxbox: invalid options")
	ErrOptionsResult    = errors.New("hxbox: options did not produce a props map")
	ErrInvalidElement   = errors.New("hxbox: base element is not renderable")
	ErrNotFound         = errors.New("hxbox: box not found")
	ErrDuplicate        = errors.New("hxbox: box already registered")
	ErrCycle            = errors.New("hxbox: box refers to itself")
	ErrSignatureInvalid = errors.New("hxbox: signature verification failed")
	ErrInvalidFormat    = errors.New("hxbox: invalid token format")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecodingError checks if err came from decoding a props token.
func IsDecodingError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSignatureInvalid)
}

// IsOptionsError checks if err means the options could not be resolved
// into props, as opposed to a failure inside the options themselves.
func IsOptionsError(err error) bool {
	return errors.Is(err, ErrInvalidOptions) || errors.Is(err, ErrOptionsResult)
}
