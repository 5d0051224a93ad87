package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when a backend answers without any text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMissingText is returned when an HTTP completion reply has no "text" field.
	ErrMissingText = errors.New(`response is missing the "text" field`)
)

// GenerationError reports that the generation backend could not produce a
// reply: it was unreachable, answered with a non-2xx status, or returned a
// malformed envelope. It is never retried.
type GenerationError struct {
	Provider   Provider
	StatusCode int // 0 when no HTTP status was received
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed (%s, status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError returns true if err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
