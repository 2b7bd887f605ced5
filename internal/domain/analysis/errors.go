package analysis

import (
	"errors"
	"time"
)

// ErrEmptyInput is returned when the submitted text is blank after trimming.
var ErrEmptyInput = errors.New("input text cannot be empty")

// UnparsableResponseError means no JSON object could be found in a completion response.
type UnparsableResponseError struct {
	Raw string
	Err error
}

func (e *UnparsableResponseError) Error() string {
	return "llm returned unparsable response: " + e.Raw
}

func (e *UnparsableResponseError) Unwrap() error { return e.Err }

// AnalysisFailedError wraps every failure of the completion step,
// including *UnparsableResponseError.
type AnalysisFailedError struct {
	Cause     error
	Timestamp time.Time
}

func (e *AnalysisFailedError) Error() string {
	return "llm analysis failed: " + e.Cause.Error()
}

func (e *AnalysisFailedError) Unwrap() error { return e.Cause }
