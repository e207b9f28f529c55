package generation

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("generation: provider returned no text")

// ErrInvalidEmailDraft marks model output that is not a subject/body JSON object.
var ErrInvalidEmailDraft = errors.New("generation: invalid email draft")

// GenerationError reports a failed call to the text generation provider.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation: %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError reports whether err (or anything it wraps) is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
