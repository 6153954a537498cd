package services

import (
	"errors"
	"fmt"
)

// Pipeline failure kinds. Each is caught at the per-file boundary and turned
// into "zero candidates for this file".
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrConversionFailure = errors.New("document conversion failed")
	ErrAPIFailure        = errors.New("llm request failed")
	ErrNoJSONFound       = errors.New("no json found in model response")
	ErrMalformedJSON     = errors.New("malformed json in model response")
	ErrResponseTooLarge  = errors.New("model response exceeds size limit")
)

// ExtractionError is returned by ExtractCandidatesJSON. Raw is the model
// output exactly as received.
type ExtractionError struct {
	Kind error
	Raw  string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
