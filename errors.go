package ragview

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation before it was sent.
	ErrValidation = errors.New("validation error")

	// ErrUnknownProvider indicates a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrBackend indicates the backend could not be reached or returned an
	// unusable payload.
	ErrBackend = errors.New("backend error")

	// ErrDecode indicates a response payload could not be decoded.
	ErrDecode = errors.New("decode error")
)
