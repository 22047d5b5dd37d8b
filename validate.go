package ragview

import "fmt"

// Messages shown to the user when a request is rejected before sending.
const (
	MsgQueryRequired = "Please enter a query."
	MsgURLRequired   = "Please enter at least one Confluence URL."
)

// ValidationError carries a user-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap returns ErrValidation so callers can use errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ValidateQuery checks a normalized query-mode request.
func (r Request) ValidateQuery() error {
	if r.Query == "" {
		return &ValidationError{Message: MsgQueryRequired}
	}
	if r.Provider != "" {
		if _, err := ParseProvider(string(r.Provider)); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return r.validateURLs()
}

// ValidateExtract checks a normalized extraction-mode request.
func (r Request) ValidateExtract() error {
	return r.validateURLs()
}

func (r Request) validateURLs() error {
	if len(r.RootPageURLs) == 0 {
		return &ValidationError{Message: MsgURLRequired}
	}
	if len(r.RootPageURLs) > MaxRootURLs {
		return &ValidationError{Message: fmt.Sprintf("Please enter at most %d URLs.", MaxRootURLs)}
	}
	return nil
}
