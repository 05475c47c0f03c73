package ai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model produced no content at all.
var ErrEmptyResponse = errors.New("empty model response")

// MalformedResponseError is returned when the model's payload did not parse
// against the declared schema. Raw carries the offending payload.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
