package pipeline

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	// ErrInputValidation marks a malformed source reference supplied by
	// the operator; recovered locally by re-prompting.
	ErrInputValidation ErrorType = iota
	// ErrExternalProcess marks a wrapped download or mux process exiting
	// non-zero; fatal for the current run, no retry.
	ErrExternalProcess
	// ErrTranslation marks a failed cue translation or a reassembly
	// misalignment; fatal for the subtitle-translation step only.
	ErrTranslation
	// ErrIntegrity marks an expected artifact missing or zero-length at a
	// verification checkpoint; fatal for the run.
	ErrIntegrity
)

func (t ErrorType) String() string {
	switch t {
	case ErrInputValidation:
		return "InputValidation"
	case ErrExternalProcess:
		return "ExternalProcess"
	case ErrTranslation:
		return "Translation"
	case ErrIntegrity:
		return "Integrity"
	default:
		return "Unknown"
	}
}

// Error is the typed failure surfaced at run boundaries.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func NewError(errorType ErrorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
	}
}

func WrapError(err error, errorType ErrorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsErrorType reports whether err carries the given taxonomy type.
func IsErrorType(err error, errorType ErrorType) bool {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Type == errorType
	}
	return false
}
